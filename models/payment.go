package models

import (
	"strconv"
	"strings"
	"time"
)

// Payment sources, recorded in the last column of the Payments sheet so
// gateway-verified rows can be told apart from manually reconciled ones.
const (
	PaymentSourceManual  = "System"
	PaymentSourceGateway = "Paystack"
)

// Payment represents a single row in the Payments sheet. Payments are
// immutable history: once appended, a row is never touched again.
type Payment struct {
	ID         string    `json:"payment_id"`
	OrderID    string    `json:"order_id"`
	AmountPaid float64   `json:"amount_paid"`
	Method     string    `json:"payment_method"`
	Reference  string    `json:"reference,omitempty"`
	PayerName  string    `json:"payer_name"`
	CreatedAt  time.Time `json:"created_at"`
	Verified   bool      `json:"verified"`
	Notes      string    `json:"notes,omitempty"`
	Source     string    `json:"source"`
}

// Column indexes for the Payments sheet (range Payments!A:J).
const (
	PaymentColID = iota
	PaymentColOrderID
	PaymentColAmount
	PaymentColMethod
	PaymentColReference
	PaymentColPayer
	PaymentColCreatedAt
	PaymentColVerified
	PaymentColNotes
	PaymentColSource
)

// Row serializes the payment into its sheet representation. Verified is
// stored as TRUE/FALSE so the sheet renders it as a checkbox-style value.
func (p Payment) Row() []string {
	reference := p.Reference
	if reference == "" {
		reference = "-"
	}
	verified := "FALSE"
	if p.Verified {
		verified = "TRUE"
	}
	return []string{
		p.ID,
		p.OrderID,
		strconv.FormatFloat(p.AmountPaid, 'f', -1, 64),
		p.Method,
		reference,
		p.PayerName,
		p.CreatedAt.UTC().Format(time.RFC3339),
		verified,
		p.Notes,
		p.Source,
	}
}

// PaymentFromRow parses a Payments sheet row. Returns false when the row is
// too short to carry an identifier.
func PaymentFromRow(row []string) (Payment, bool) {
	if len(row) == 0 || row[PaymentColID] == "" {
		return Payment{}, false
	}
	amount, _ := strconv.ParseFloat(cell(row, PaymentColAmount), 64)
	reference := cell(row, PaymentColReference)
	if reference == "-" {
		reference = ""
	}
	return Payment{
		ID:         cell(row, PaymentColID),
		OrderID:    cell(row, PaymentColOrderID),
		AmountPaid: amount,
		Method:     cell(row, PaymentColMethod),
		Reference:  reference,
		PayerName:  cell(row, PaymentColPayer),
		CreatedAt:  parseTimestamp(cell(row, PaymentColCreatedAt)),
		Verified:   strings.EqualFold(cell(row, PaymentColVerified), "TRUE"),
		Notes:      cell(row, PaymentColNotes),
		Source:     cell(row, PaymentColSource),
	}, true
}
