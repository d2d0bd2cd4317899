package models

import (
	"time"
)

// Customer represents a single row in the Customers sheet.
// Customers are created once, on the first order from a new contact,
// and are never updated or deleted afterwards.
type Customer struct {
	ID        string    `json:"customer_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Column indexes for the Customers sheet (range Customers!A:F).
const (
	CustomerColID = iota
	CustomerColName
	CustomerColEmail
	CustomerColPhone
	CustomerColAddress
	CustomerColCreatedAt
)

// Row serializes the customer into its sheet representation.
func (c Customer) Row() []string {
	return []string{
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.Address,
		c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CustomerFromRow parses a Customers sheet row. Returns false when the row
// is too short to carry an identifier.
func CustomerFromRow(row []string) (Customer, bool) {
	if len(row) == 0 || row[CustomerColID] == "" {
		return Customer{}, false
	}
	return Customer{
		ID:        cell(row, CustomerColID),
		Name:      cell(row, CustomerColName),
		Email:     cell(row, CustomerColEmail),
		Phone:     cell(row, CustomerColPhone),
		Address:   cell(row, CustomerColAddress),
		CreatedAt: parseTimestamp(cell(row, CustomerColCreatedAt)),
	}, true
}

// cell reads a column from a sheet row, tolerating rows the store returned
// shorter than the full layout (trailing empty cells are dropped by the API).
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}
