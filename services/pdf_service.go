package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/cloud30/cloud30-sales-api/models"
)

// InvoiceDocument carries everything the renderer needs to lay out a
// single-page invoice.
type InvoiceDocument struct {
	InvoiceID string
	Order     models.Order
	Total     float64
	IssuedAt  time.Time
}

// RenderInvoicePDF renders the invoice into an in-memory PDF. Rendering is
// purely local: it completes (or fails) before any network call in the
// invoice pipeline, since the bytes are an input to both the upload and the
// email attachment.
func RenderInvoicePDF(doc InvoiceDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	line := func(text string) {
		pdf.CellFormat(0, 7, text, "", 1, "L", false, 0, "")
	}

	line(fmt.Sprintf("Invoice ID: %s", doc.InvoiceID))
	line(fmt.Sprintf("Order ID: %s", doc.Order.ID))
	line(fmt.Sprintf("Customer: %s", doc.Order.CustomerName))
	line(fmt.Sprintf("Email: %s", doc.Order.Email))
	line(fmt.Sprintf("Phone: %s", doc.Order.Phone))
	line(fmt.Sprintf("Address: %s", doc.Order.Address))
	line(fmt.Sprintf("Date: %s", doc.IssuedAt.Format("02 Jan 2006 15:04")))
	pdf.Ln(4)

	line(fmt.Sprintf("Product: %s", doc.Order.Product))
	line(fmt.Sprintf("Quantity: %d", doc.Order.Quantity))
	line(fmt.Sprintf("Unit Price: NGN %.2f", doc.Order.UnitPrice))
	line(fmt.Sprintf("Total: NGN %.2f", doc.Total))
	pdf.Ln(4)

	status := doc.Order.Status
	if status == "" {
		status = models.OrderStatusPending
	}
	line(fmt.Sprintf("Status: %s", status))
	pdf.Ln(4)

	pdf.CellFormat(0, 7, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
