package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloud30/cloud30-sales-api/models"
)

type invoiceFixture struct {
	store     *MockTabularStore
	documents *MockDocumentStore
	mail      *MockMailService
	svc       *InvoiceService
}

func newInvoiceFixture() *invoiceFixture {
	store := NewMockTabularStore()
	documents := NewMockDocumentStore()
	mail := NewMockMailService()
	orders := NewOrderService(store, testLogger())
	return &invoiceFixture{
		store:     store,
		documents: documents,
		mail:      mail,
		svc:       NewInvoiceService(store, orders, documents, mail, testLogger(), nil),
	}
}

func TestGenerateInvoice_HappyPath(t *testing.T) {
	f := newInvoiceFixture()
	seedOrder(t, f.store, "ORD-INV01", 2, 1500, models.OrderStatusPaid)

	result, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV01")

	assert.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.Empty(t, result.FailedStep)
	assert.Equal(t, []string{InvoiceStepRender, InvoiceStepUpload, InvoiceStepLog, InvoiceStepEmail}, result.CompletedSteps)

	invoice := result.Invoice
	assert.True(t, strings.HasPrefix(invoice.ID, "INV-"))
	assert.Equal(t, "ORD-INV01", invoice.OrderID)
	assert.Equal(t, float64(3000), invoice.Total)
	assert.Equal(t, models.InvoiceStatusGenerated, invoice.Status)

	// The document landed under the invoice key and is a real PDF.
	pdf, ok := f.documents.Document(fmt.Sprintf("invoices/%s.pdf", invoice.ID))
	assert.True(t, ok)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	// One InvoiceLogs row, readable back through the service.
	assert.Equal(t, 1, f.store.RowCount(SheetInvoiceLogs))
	stored, err := f.svc.GetInvoice(context.Background(), invoice.ID)
	assert.NoError(t, err)
	assert.Equal(t, invoice.ID, stored.ID)
	assert.Equal(t, float64(3000), stored.Total)

	// One email, addressed to the order's customer, with the PDF attached.
	sent := f.mail.Sent()
	assert.Len(t, sent, 1)
	assert.Equal(t, "a@x.com", sent[0].To)
	assert.Equal(t, "Your Invoice - "+invoice.ID, sent[0].Subject)
	assert.Equal(t, len(pdf), sent[0].PDFBytes)
}

func TestGenerateInvoice_NotIdempotent(t *testing.T) {
	f := newInvoiceFixture()
	seedOrder(t, f.store, "ORD-INV02", 1, 100, models.OrderStatusPaid)

	first, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV02")
	assert.NoError(t, err)
	second, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV02")
	assert.NoError(t, err)

	assert.NotEqual(t, first.Invoice.ID, second.Invoice.ID)
	assert.Equal(t, 2, f.store.RowCount(SheetInvoiceLogs))
	assert.Len(t, f.mail.Sent(), 2)
}

func TestGenerateInvoice_UnknownOrder(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.GenerateInvoice(context.Background(), "ORD-MISSING")

	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, 0, f.store.RowCount(SheetInvoiceLogs))
	assert.Empty(t, f.mail.Sent())
}

func TestGenerateInvoice_MissingOrderID(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.GenerateInvoice(context.Background(), "")

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestGenerateInvoice_UploadFailureStopsPipeline(t *testing.T) {
	f := newInvoiceFixture()
	seedOrder(t, f.store, "ORD-INV03", 1, 100, models.OrderStatusPaid)

	f.documents.FailUpload = true
	result, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV03")

	assert.Error(t, err)
	assert.Equal(t, InvoiceStepUpload, result.FailedStep)
	assert.Equal(t, []string{InvoiceStepRender}, result.CompletedSteps)
	// Nothing after the failed step ran.
	assert.Equal(t, 0, f.store.RowCount(SheetInvoiceLogs))
	assert.Empty(t, f.mail.Sent())
}

func TestGenerateInvoice_LogFailureReportsStoredDocument(t *testing.T) {
	f := newInvoiceFixture()
	seedOrder(t, f.store, "ORD-INV04", 1, 100, models.OrderStatusPaid)

	f.store.FailNext = "append"
	result, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV04")

	assert.Error(t, err)
	assert.Equal(t, InvoiceStepLog, result.FailedStep)
	assert.Equal(t, []string{InvoiceStepRender, InvoiceStepUpload}, result.CompletedSteps)
	assert.Empty(t, f.mail.Sent())
}

func TestGenerateInvoice_EmailFailureIsNotFatal(t *testing.T) {
	f := newInvoiceFixture()
	seedOrder(t, f.store, "ORD-INV05", 1, 100, models.OrderStatusPaid)

	f.mail.FailNext = true
	result, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV05")

	// Document and log row are durable; the run still succeeds.
	assert.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Equal(t, InvoiceStepEmail, result.FailedStep)
	assert.Equal(t, []string{InvoiceStepRender, InvoiceStepUpload, InvoiceStepLog}, result.CompletedSteps)
	assert.Equal(t, 1, f.store.RowCount(SheetInvoiceLogs))

	stored, getErr := f.svc.GetInvoice(context.Background(), result.Invoice.ID)
	assert.NoError(t, getErr)
	assert.Equal(t, result.Invoice.ID, stored.ID)
}

func TestGetInvoice_NotFound(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.svc.GetInvoice(context.Background(), "INV-MISSING")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}

func TestPresignInvoice(t *testing.T) {
	f := newInvoiceFixture()
	seedOrder(t, f.store, "ORD-INV06", 1, 100, models.OrderStatusPaid)

	result, err := f.svc.GenerateInvoice(context.Background(), "ORD-INV06")
	assert.NoError(t, err)

	url, err := f.svc.PresignInvoice(context.Background(), result.Invoice.ID)
	assert.NoError(t, err)
	assert.Contains(t, url, fmt.Sprintf("invoices/%s.pdf", result.Invoice.ID))

	_, err = f.svc.PresignInvoice(context.Background(), "INV-MISSING")
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
