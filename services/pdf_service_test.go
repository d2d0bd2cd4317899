package services

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cloud30/cloud30-sales-api/models"
)

func TestRenderInvoicePDF(t *testing.T) {
	pdf, err := RenderInvoicePDF(InvoiceDocument{
		InvoiceID: "INV-ABC123",
		Order: models.Order{
			ID:           "ORD-ABC123",
			Product:      "Widget",
			Quantity:     3,
			UnitPrice:    1000,
			CustomerName: "Ada Lovelace",
			Email:        "a@x.com",
		},
		Total:    3000,
		IssuedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(pdf), 500)
}

func TestRenderInvoicePDF_IsDeterministicForSameInput(t *testing.T) {
	doc := InvoiceDocument{
		InvoiceID: "INV-SAME01",
		Order: models.Order{
			ID: "ORD-SAME01", Product: "Widget", Quantity: 1, UnitPrice: 100, CustomerName: "Ada",
		},
		Total:    100,
		IssuedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	first, err := RenderInvoicePDF(doc)
	assert.NoError(t, err)
	second, err := RenderInvoicePDF(doc)
	assert.NoError(t, err)

	assert.Equal(t, len(first), len(second))
}
