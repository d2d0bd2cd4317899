package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cloud30/cloud30-sales-api/config"
	"github.com/cloud30/cloud30-sales-api/metrics"
	"github.com/cloud30/cloud30-sales-api/utils"
)

// GatewayTransaction is the authoritative view of a transaction as reported
// by the payment gateway. Amount is already converted to naira.
type GatewayTransaction struct {
	Reference string
	Amount    float64
	Channel   string
	Status    string
	PayerName string
	Email     string
}

// PaystackInterface defines the payment gateway operations used by the
// payment services.
type PaystackInterface interface {
	// VerifyTransaction asks the gateway for the authoritative state of the
	// referenced transaction. A declined, pending or malformed result is
	// ErrVerificationFailed; transport problems surface as UpstreamError.
	VerifyTransaction(ctx context.Context, reference string) (*GatewayTransaction, error)
}

// PaystackService calls the Paystack REST API.
type PaystackService struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

var paystackInstance PaystackInterface

// InitPaystackService builds the gateway client from configuration and
// installs it as the process-wide instance.
func InitPaystackService(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) PaystackInterface {
	paystackInstance = &PaystackService{
		baseURL:   strings.TrimRight(cfg.PaystackBaseURL, "/"),
		secretKey: cfg.PaystackSecretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger:  logger.With("component", "paystack"),
		metrics: m,
	}
	return paystackInstance
}

// GetPaystackService returns the initialized gateway client instance.
func GetPaystackService() PaystackInterface {
	return paystackInstance
}

// SetPaystackService sets the gateway client instance (primarily for testing).
func SetPaystackService(service PaystackInterface) {
	paystackInstance = service
}

// verifyResponse mirrors Paystack's transaction verify envelope.
type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"` // minor currency unit (kobo)
		Channel   string `json:"channel"`
		Customer  struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// VerifyTransaction calls GET /transaction/verify/{reference}.
func (s *PaystackService) VerifyTransaction(ctx context.Context, reference string) (*GatewayTransaction, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", s.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, upstream("paystack", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.observe("error", start)
		return nil, upstream("paystack", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		s.observe("error", start)
		return nil, upstream("paystack", err)
	}

	var envelope verifyResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		s.observe("malformed", start)
		s.logger.Warn("gateway returned malformed body", "reference", reference, "http_status", resp.StatusCode)
		return nil, fmt.Errorf("%w: malformed gateway response", ErrVerificationFailed)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		s.observe("error", start)
		return nil, upstream("paystack", fmt.Errorf("gateway returned %d: %s", resp.StatusCode, envelope.Message))
	}

	if !envelope.Status || envelope.Data.Status != "success" {
		s.observe("declined", start)
		s.logger.Info("gateway declined transaction",
			"reference", reference, "gateway_status", envelope.Data.Status, "message", envelope.Message)
		return nil, fmt.Errorf("%w: %s", ErrVerificationFailed, envelope.Message)
	}
	s.observe("success", start)

	payerName := strings.TrimSpace(envelope.Data.Customer.FirstName + " " + envelope.Data.Customer.LastName)
	if payerName == "" {
		payerName = "N/A"
	}

	return &GatewayTransaction{
		Reference: envelope.Data.Reference,
		Amount:    utils.KoboToNaira(envelope.Data.Amount),
		Channel:   envelope.Data.Channel,
		Status:    envelope.Data.Status,
		PayerName: payerName,
		Email:     envelope.Data.Customer.Email,
	}, nil
}

func (s *PaystackService) observe(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.GatewayRequests.WithLabelValues(status).Inc()
	s.metrics.GatewayLatency.WithLabelValues(status).Observe(time.Since(start).Seconds())
}
