package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOrderTotal(t *testing.T) {
	order := Order{Quantity: 3, UnitPrice: 1500.5}
	assert.Equal(t, 4501.5, order.Total())
}

func TestOrderFromRow_ToleratesShortRows(t *testing.T) {
	// The Sheets API drops trailing empty cells; a row holding only the id
	// and customer reference must still parse.
	order, ok := OrderFromRow([]string{"ORD-ABC123", "CUST-DEF456"})
	assert.True(t, ok)
	assert.Equal(t, "ORD-ABC123", order.ID)
	assert.Equal(t, "CUST-DEF456", order.CustomerID)
	assert.Equal(t, 0, order.Quantity)
	assert.Equal(t, "", order.Status)
}

func TestOrderFromRow_RejectsRowsWithoutID(t *testing.T) {
	_, ok := OrderFromRow(nil)
	assert.False(t, ok)
	_, ok = OrderFromRow([]string{""})
	assert.False(t, ok)
}

func TestPaymentRow_EmptyReferencePlaceholder(t *testing.T) {
	payment := Payment{ID: "PAY-ABC123", OrderID: "ORD-1", Verified: true}

	row := payment.Row()
	assert.Equal(t, "-", row[PaymentColReference])
	assert.Equal(t, "TRUE", row[PaymentColVerified])

	parsed, ok := PaymentFromRow(row)
	assert.True(t, ok)
	assert.Equal(t, "", parsed.Reference)
	assert.True(t, parsed.Verified)
}

func TestPaymentFromRow_VerifiedIsCaseInsensitive(t *testing.T) {
	row := Payment{ID: "PAY-1", Verified: true}.Row()
	row[PaymentColVerified] = "true"

	parsed, ok := PaymentFromRow(row)
	assert.True(t, ok)
	assert.True(t, parsed.Verified)
}

func TestInvoiceRow_TotalKeepsNairaPrefix(t *testing.T) {
	invoice := Invoice{ID: "INV-ABC123", OrderID: "ORD-1", Total: 3000}

	row := invoice.Row()
	assert.Equal(t, "₦3000", row[InvoiceColTotal])

	parsed, ok := InvoiceFromRow(row)
	assert.True(t, ok)
	assert.Equal(t, float64(3000), parsed.Total)
}

func TestTimestampsSurviveSerialization(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	customer := Customer{ID: "CUST-ABC123", Name: "Ada", CreatedAt: createdAt}

	parsed, ok := CustomerFromRow(customer.Row())
	assert.True(t, ok)
	assert.True(t, parsed.CreatedAt.Equal(createdAt))
}

func TestParseTimestamp_MalformedValueIsZero(t *testing.T) {
	row := Customer{ID: "CUST-1"}.Row()
	row[CustomerColCreatedAt] = "yesterday"

	parsed, ok := CustomerFromRow(row)
	assert.True(t, ok)
	assert.True(t, parsed.CreatedAt.IsZero())
}
