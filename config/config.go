package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port               string
	GoEnv              string
	CORSAllowedOrigins string

	// Tabular store (Google Sheets)
	GoogleSheetID        string
	GoogleServiceAccount string // service account credentials as a JSON blob

	// Document store (S3)
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	// Payment gateway (Paystack)
	PaystackSecretKey string
	PaystackBaseURL   string

	// Mail transport (SMTP)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFromName string

	// Workspace database (Notion)
	NotionToken      string
	NotionDatabaseID string

	// Auth (optional; API is open when unset)
	Auth0Domain   string
	Auth0Audience string

	// Consistency sweep cron expression; empty disables the scheduler
	ReconcileSchedule string

	LogLevel string
}

var configInstance *Config

// Load loads the configuration from environment variables.
// It automatically determines which .env file to load based on GO_ENV.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// In production the environment variables are set directly,
			// so it's okay if .env files don't exist
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	config := &Config{
		Port:                 getEnv("PORT", "8080"),
		GoEnv:                env,
		CORSAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		GoogleSheetID:        getEnv("GOOGLE_SHEET_ID", ""),
		GoogleServiceAccount: getEnv("GOOGLE_SERVICE_ACCOUNT", ""),
		AWSRegion:            getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:          getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:       getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		PaystackSecretKey:    getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:      getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		SMTPHost:             getEnv("SMTP_HOST", ""),
		SMTPPort:             getEnvInt("SMTP_PORT", 465),
		SMTPUser:             getEnv("SMTP_USER", ""),
		SMTPPassword:         getEnv("SMTP_PASS", ""),
		MailFromName:         getEnv("MAIL_FROM_NAME", "Cloud30 Sales"),
		NotionToken:          getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID:     getEnv("NOTION_DATABASE_ID", ""),
		Auth0Domain:          getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:        getEnv("AUTH0_AUDIENCE", ""),
		ReconcileSchedule:    getEnv("RECONCILE_SCHEDULE", "@every 15m"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	configInstance = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.GoogleSheetID == "" {
		return fmt.Errorf("GOOGLE_SHEET_ID is required")
	}
	if c.GoogleServiceAccount == "" {
		return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT is required")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// GetConfig returns the loaded configuration instance
func GetConfig() *Config {
	return configInstance
}

// SetConfig sets the configuration instance (primarily for testing)
func SetConfig(c *Config) {
	configInstance = c
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var parsed int
	if _, err := fmt.Sscanf(value, "%d", &parsed); err != nil {
		log.Printf("Invalid integer for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return parsed
}
