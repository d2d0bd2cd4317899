package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloud30/cloud30-sales-api/metrics"
	"github.com/cloud30/cloud30-sales-api/models"
	"github.com/cloud30/cloud30-sales-api/utils"
)

// Invoice pipeline step names, in execution order. Rendering happens first
// and entirely in memory; the three network steps follow.
const (
	InvoiceStepRender = "render"
	InvoiceStepUpload = "upload"
	InvoiceStepLog    = "log"
	InvoiceStepEmail  = "email"
)

// InvoiceResult reports the outcome of a generation run, including how far
// the pipeline got. EmailSent is false when every durable step succeeded but
// the notification failed; the invoice itself is still valid.
type InvoiceResult struct {
	Invoice        models.Invoice `json:"invoice"`
	EmailSent      bool           `json:"email_sent"`
	CompletedSteps []string       `json:"completed_steps"`
	FailedStep     string         `json:"failed_step,omitempty"`
}

// InvoiceService reconstructs an order from the ledger, renders the invoice
// document, persists it, logs it and dispatches it by mail.
type InvoiceService struct {
	store     TabularStore
	orders    *OrderService
	documents DocumentStoreInterface
	mail      MailInterface
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewInvoiceService creates an invoice generator.
func NewInvoiceService(store TabularStore, orders *OrderService, documents DocumentStoreInterface, mail MailInterface, logger *slog.Logger, m *metrics.Metrics) *InvoiceService {
	return &InvoiceService{
		store:     store,
		orders:    orders,
		documents: documents,
		mail:      mail,
		logger:    logger.With("component", "invoices"),
		metrics:   m,
	}
}

// GenerateInvoice runs the invoice pipeline for an order. The steps form a
// saga across independent services: each completed step is recorded, and a
// failure reports which step broke rather than rolling anything back. A
// failed email after the document is stored and logged does not fail the
// run. Generation is not idempotent: re-invoking for the same order produces
// a new invoice id, document and email.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, orderID string) (InvoiceResult, error) {
	if orderID == "" {
		return InvoiceResult{}, NewValidationError("orderId")
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return InvoiceResult{}, err
	}

	invoiceID := utils.NewID(utils.InvoiceIDPrefix)
	issuedAt := time.Now()
	total := order.Total()

	result := InvoiceResult{}

	pdf, err := RenderInvoicePDF(InvoiceDocument{
		InvoiceID: invoiceID,
		Order:     order,
		Total:     total,
		IssuedAt:  issuedAt,
	})
	if err != nil {
		result.FailedStep = InvoiceStepRender
		return result, fmt.Errorf("render invoice %s: %w", invoiceID, err)
	}
	result.CompletedSteps = append(result.CompletedSteps, InvoiceStepRender)

	key := fmt.Sprintf("invoices/%s.pdf", invoiceID)
	url, err := s.documents.UploadDocument(ctx, key, pdf, "application/pdf")
	if err != nil {
		result.FailedStep = InvoiceStepUpload
		return result, fmt.Errorf("upload invoice %s: %w", invoiceID, err)
	}
	result.CompletedSteps = append(result.CompletedSteps, InvoiceStepUpload)

	invoice := models.Invoice{
		ID:           invoiceID,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Total:        total,
		Status:       models.InvoiceStatusGenerated,
		CreatedAt:    issuedAt,
		DocumentURL:  url,
	}
	if err := s.store.AppendRow(ctx, SheetInvoiceLogs, invoice.Row()); err != nil {
		// The document is already stored; the log row is the failed step.
		result.FailedStep = InvoiceStepLog
		if s.metrics != nil {
			s.metrics.Inconsistencies.WithLabelValues("document_without_log", "found").Inc()
		}
		return result, fmt.Errorf("log invoice %s: %w", invoiceID, err)
	}
	result.CompletedSteps = append(result.CompletedSteps, InvoiceStepLog)
	result.Invoice = invoice

	if err := s.mail.SendInvoiceEmail(ctx, order.Email, order.CustomerName, invoiceID, order.ID, pdf); err != nil {
		// Document stored and logged; the failed notification must not undo
		// the caller's view of those durable effects.
		result.FailedStep = InvoiceStepEmail
		s.logger.Error("invoice generated but email failed",
			"invoice_id", invoiceID, "order_id", order.ID, "error", err)
		return result, nil
	}
	result.CompletedSteps = append(result.CompletedSteps, InvoiceStepEmail)
	result.EmailSent = true

	s.logger.Info("invoice generated", "invoice_id", invoiceID, "order_id", order.ID, "total", total)
	return result, nil
}

// GetInvoice looks an invoice up in the InvoiceLogs sheet.
func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (models.Invoice, error) {
	rows, err := s.store.ReadRows(ctx, SheetInvoiceLogs)
	if err != nil {
		return models.Invoice{}, err
	}
	for _, row := range rows {
		invoice, ok := models.InvoiceFromRow(row)
		if !ok {
			continue
		}
		if invoice.ID == invoiceID {
			return invoice, nil
		}
	}
	return models.Invoice{}, ErrInvoiceNotFound
}

// PresignInvoice produces a time-limited download link for a logged invoice.
func (s *InvoiceService) PresignInvoice(ctx context.Context, invoiceID string) (string, error) {
	if _, err := s.GetInvoice(ctx, invoiceID); err != nil {
		return "", err
	}
	return s.documents.GetPresignedURL(ctx, fmt.Sprintf("invoices/%s.pdf", invoiceID))
}
