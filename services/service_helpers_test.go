package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/cloud30/cloud30-sales-api/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedOrder appends an order row directly to the mock store and returns it.
func seedOrder(t *testing.T, store *MockTabularStore, id string, quantity int, unitPrice float64, status string) models.Order {
	t.Helper()

	order := models.Order{
		ID:           id,
		CustomerID:   "CUST-TEST01",
		Product:      "Widget",
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Status:       status,
		CustomerName: "Ada",
		Email:        "a@x.com",
		Phone:        "123",
		Address:      "Lagos",
		CreatedAt:    time.Now(),
	}
	if err := store.AppendRow(context.Background(), SheetOrders, order.Row()); err != nil {
		t.Fatalf("Failed to seed order: %v", err)
	}
	return order
}
