package models

import (
	"strconv"
	"strings"
	"time"
)

// InvoiceStatusGenerated is the only status an invoice log row ever carries;
// invoices are write-once records of a generation run.
const InvoiceStatusGenerated = "Generated"

// Invoice represents a single row in the InvoiceLogs sheet. One row is
// appended per generation request; re-requesting an invoice for the same
// order appends another row with a fresh identifier.
type Invoice struct {
	ID           string    `json:"invoice_id"`
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	DocumentURL  string    `json:"document_url"`
}

// Column indexes for the InvoiceLogs sheet (range InvoiceLogs!A:H).
const (
	InvoiceColID = iota
	InvoiceColOrderID
	InvoiceColCustomerName
	InvoiceColEmail
	InvoiceColTotal
	InvoiceColStatus
	InvoiceColCreatedAt
	InvoiceColDocumentURL
)

// Row serializes the invoice into its sheet representation. The total keeps
// the naira prefix the finance sheet expects.
func (i Invoice) Row() []string {
	return []string{
		i.ID,
		i.OrderID,
		i.CustomerName,
		i.Email,
		"₦" + strconv.FormatFloat(i.Total, 'f', -1, 64),
		i.Status,
		i.CreatedAt.UTC().Format(time.RFC3339),
		i.DocumentURL,
	}
}

// InvoiceFromRow parses an InvoiceLogs sheet row. Returns false when the row
// is too short to carry an identifier.
func InvoiceFromRow(row []string) (Invoice, bool) {
	if len(row) == 0 || row[InvoiceColID] == "" {
		return Invoice{}, false
	}
	total, _ := strconv.ParseFloat(strings.TrimPrefix(cell(row, InvoiceColTotal), "₦"), 64)
	return Invoice{
		ID:           cell(row, InvoiceColID),
		OrderID:      cell(row, InvoiceColOrderID),
		CustomerName: cell(row, InvoiceColCustomerName),
		Email:        cell(row, InvoiceColEmail),
		Total:        total,
		Status:       cell(row, InvoiceColStatus),
		CreatedAt:    parseTimestamp(cell(row, InvoiceColCreatedAt)),
		DocumentURL:  cell(row, InvoiceColDocumentURL),
	}, true
}
