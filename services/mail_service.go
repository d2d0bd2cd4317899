package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/cloud30/cloud30-sales-api/config"
	"github.com/cloud30/cloud30-sales-api/metrics"
)

// MailInterface defines the fire-and-forget mail transport used by the
// invoice pipeline and the contact form.
type MailInterface interface {
	// SendInvoiceEmail delivers the rendered invoice as a PDF attachment.
	SendInvoiceEmail(ctx context.Context, to, customerName, invoiceID, orderID string, pdf []byte) error

	// SendContactMessage forwards a contact-form message to the sales inbox.
	SendContactMessage(ctx context.Context, fromName, fromEmail, message string) error
}

// MailService sends mail over SMTP.
type MailService struct {
	host     string
	port     int
	user     string
	password string
	fromName string
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

var mailServiceInstance MailInterface

// InitMailService builds the SMTP sender from configuration and installs it
// as the process-wide instance.
func InitMailService(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) MailInterface {
	mailServiceInstance = &MailService{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		fromName: cfg.MailFromName,
		logger:   logger.With("component", "mail"),
		metrics:  m,
	}
	return mailServiceInstance
}

// GetMailService returns the initialized mail service instance.
func GetMailService() MailInterface {
	return mailServiceInstance
}

// SetMailService sets the mail service instance (primarily for testing).
func SetMailService(service MailInterface) {
	mailServiceInstance = service
}

// SendInvoiceEmail sends the invoice to the order's stored address.
func (s *MailService) SendInvoiceEmail(ctx context.Context, to, customerName, invoiceID, orderID string, pdf []byte) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.user); err != nil {
		return s.fail("invoice", err)
	}
	if err := msg.To(to); err != nil {
		return s.fail("invoice", err)
	}
	msg.Subject(fmt.Sprintf("Your Invoice - %s", invoiceID))
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf(
		"Dear %s,\n\nPlease find attached your invoice for Order %s.\n\nThank you for choosing Cloud30.",
		customerName, orderID,
	))
	if err := msg.AttachReader(invoiceID+".pdf", bytes.NewReader(pdf)); err != nil {
		return s.fail("invoice", err)
	}

	if err := s.send(ctx, msg); err != nil {
		return s.fail("invoice", err)
	}
	if s.metrics != nil {
		s.metrics.EmailsSent.WithLabelValues("invoice", "ok").Inc()
	}
	s.logger.Info("invoice email sent", "invoice_id", invoiceID, "to", to)
	return nil
}

// SendContactMessage forwards a contact-form message to the sales inbox.
func (s *MailService) SendContactMessage(ctx context.Context, fromName, fromEmail, message string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(fromName, s.user); err != nil {
		return s.fail("contact", err)
	}
	if err := msg.To(s.user); err != nil {
		return s.fail("contact", err)
	}
	msg.Subject(fmt.Sprintf("New message from %s", fromName))
	msg.SetBodyString(gomail.TypeTextPlain, message)
	msg.AddAlternativeString(gomail.TypeTextHTML, fmt.Sprintf(
		"<p><strong>From:</strong> %s (%s)</p><p>%s</p>", fromName, fromEmail, message,
	))

	if err := s.send(ctx, msg); err != nil {
		return s.fail("contact", err)
	}
	if s.metrics != nil {
		s.metrics.EmailsSent.WithLabelValues("contact", "ok").Inc()
	}
	return nil
}

func (s *MailService) send(ctx context.Context, msg *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.user),
		gomail.WithPassword(s.password),
	}
	if s.port == 465 {
		opts = append(opts, gomail.WithSSL())
	}
	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (s *MailService) fail(kind string, err error) error {
	if s.metrics != nil {
		s.metrics.EmailsSent.WithLabelValues(kind, "error").Inc()
	}
	return upstream("mail", err)
}
