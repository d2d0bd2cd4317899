package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/cloud30/cloud30-sales-api/config"
	"github.com/cloud30/cloud30-sales-api/metrics"
)

// DocumentStoreInterface defines the document store operations: persisting a
// rendered invoice and producing a retrievable link for it.
type DocumentStoreInterface interface {
	// UploadDocument stores content under key and returns the object URL.
	UploadDocument(ctx context.Context, key string, content []byte, contentType string) (string, error)

	// GetPresignedURL generates a time-limited link for a stored document.
	GetPresignedURL(ctx context.Context, key string) (string, error)
}

// S3Service implements DocumentStoreInterface on AWS S3.
type S3Service struct {
	client  *s3.Client
	bucket  string
	region  string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

var documentStoreInstance DocumentStoreInterface

// InitS3Service initializes the S3-backed document store with AWS credentials.
func InitS3Service(cfg *appConfig.Config, logger *slog.Logger, m *metrics.Metrics) (DocumentStoreInterface, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.AWSRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)

	documentStoreInstance = &S3Service{
		client:  client,
		bucket:  cfg.AWSS3Bucket,
		region:  cfg.AWSRegion,
		logger:  logger.With("component", "documents"),
		metrics: m,
	}
	return documentStoreInstance, nil
}

// GetDocumentStore returns the initialized document store instance.
func GetDocumentStore() DocumentStoreInterface {
	return documentStoreInstance
}

// SetDocumentStore sets the document store instance (primarily for testing).
func SetDocumentStore(store DocumentStoreInterface) {
	documentStoreInstance = store
}

// UploadDocument writes the document to the bucket and returns its object
// URL. The invoices prefix of the bucket is readable, mirroring the shared
// drive links the sheet historically stored.
func (s *S3Service) UploadDocument(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		if s.metrics != nil {
			s.metrics.DocumentsStored.WithLabelValues("error").Inc()
		}
		return "", upstream("s3", fmt.Errorf("failed to upload to S3: %w", err))
	}
	if s.metrics != nil {
		s.metrics.DocumentsStored.WithLabelValues("ok").Inc()
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.logger.Info("document stored", "key", key, "bytes", len(content))
	return url, nil
}

// GetPresignedURL generates a presigned URL for a stored document.
// The URL expires after 1 hour.
func (s *S3Service) GetPresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)
	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", upstream("s3", fmt.Errorf("failed to generate presigned URL: %w", err))
	}

	return request.URL, nil
}
