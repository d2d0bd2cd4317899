package models

import (
	"strconv"
	"time"
)

// Order status values. The only legal transition is Pending -> Paid and it
// never reverts.
const (
	OrderStatusPending = "Pending"
	OrderStatusPaid    = "Paid"
)

// Order represents a single row in the Orders sheet. Customer contact fields
// are denormalized onto the order for read convenience; CustomerID is a weak
// reference into the Customers sheet.
type Order struct {
	ID           string    `json:"order_id"`
	CustomerID   string    `json:"customer_id,omitempty"`
	Product      string    `json:"product"`
	Quantity     int       `json:"quantity"`
	UnitPrice    float64   `json:"unit_price"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// Column indexes for the Orders sheet (range Orders!A:K).
const (
	OrderColID = iota
	OrderColCustomerID
	OrderColProduct
	OrderColQuantity
	OrderColUnitPrice
	OrderColStatus
	OrderColCustomerName
	OrderColEmail
	OrderColPhone
	OrderColAddress
	OrderColCreatedAt
)

// Total returns the amount owed on the order.
func (o Order) Total() float64 {
	return o.UnitPrice * float64(o.Quantity)
}

// Row serializes the order into its sheet representation.
func (o Order) Row() []string {
	return []string{
		o.ID,
		o.CustomerID,
		o.Product,
		strconv.Itoa(o.Quantity),
		strconv.FormatFloat(o.UnitPrice, 'f', -1, 64),
		o.Status,
		o.CustomerName,
		o.Email,
		o.Phone,
		o.Address,
		o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// OrderFromRow parses an Orders sheet row. Returns false when the row is too
// short to carry an identifier.
func OrderFromRow(row []string) (Order, bool) {
	if len(row) == 0 || row[OrderColID] == "" {
		return Order{}, false
	}
	quantity, _ := strconv.Atoi(cell(row, OrderColQuantity))
	unitPrice, _ := strconv.ParseFloat(cell(row, OrderColUnitPrice), 64)
	return Order{
		ID:           cell(row, OrderColID),
		CustomerID:   cell(row, OrderColCustomerID),
		Product:      cell(row, OrderColProduct),
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Status:       cell(row, OrderColStatus),
		CustomerName: cell(row, OrderColCustomerName),
		Email:        cell(row, OrderColEmail),
		Phone:        cell(row, OrderColPhone),
		Address:      cell(row, OrderColAddress),
		CreatedAt:    parseTimestamp(cell(row, OrderColCreatedAt)),
	}, true
}
