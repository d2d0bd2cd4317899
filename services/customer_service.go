package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloud30/cloud30-sales-api/models"
	"github.com/cloud30/cloud30-sales-api/utils"
)

// CustomerService deduplicates customers against the Customers sheet. A
// contact is considered the same customer when its email or phone matches an
// existing row, email taking precedence.
type CustomerService struct {
	store  TabularStore
	logger *slog.Logger
}

// NewCustomerService creates a customer resolver backed by the given store.
func NewCustomerService(store TabularStore, logger *slog.Logger) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: logger.With("component", "customers"),
	}
}

// ResolveCustomer returns the identifier of the customer matching the given
// contact details, creating a new row when no match exists. Existing rows are
// never updated: stale name or address data on a matched customer is kept
// as-is. The boolean reports whether a new customer was created.
//
// There is no locking around the read-then-append sequence, so two
// concurrent requests for the same new contact can both miss and create
// duplicate rows. The consistency sweep reports such duplicates.
func (s *CustomerService) ResolveCustomer(ctx context.Context, name, email, phone, address string) (string, bool, error) {
	rows, err := s.store.ReadRows(ctx, SheetCustomers)
	if err != nil {
		return "", false, err
	}

	for _, row := range rows {
		customer, ok := models.CustomerFromRow(row)
		if !ok {
			continue
		}
		if email != "" && customer.Email == email {
			return customer.ID, false, nil
		}
		if phone != "" && customer.Phone == phone {
			return customer.ID, false, nil
		}
	}

	customer := models.Customer{
		ID:        utils.NewID(utils.CustomerIDPrefix),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: time.Now(),
	}
	if err := s.store.AppendRow(ctx, SheetCustomers, customer.Row()); err != nil {
		return "", false, err
	}

	s.logger.Info("customer created", "customer_id", customer.ID, "email", email)
	return customer.ID, true, nil
}
