package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloud30/cloud30-sales-api/models"
	"github.com/cloud30/cloud30-sales-api/utils"
)

// OrderService owns the Orders ledger: creating orders, reading them back
// and transitioning their status.
type OrderService struct {
	store  TabularStore
	logger *slog.Logger
}

// NewOrderService creates an order ledger backed by the given store.
func NewOrderService(store TabularStore, logger *slog.Logger) *OrderService {
	return &OrderService{
		store:  store,
		logger: logger.With("component", "orders"),
	}
}

// CreateOrderInput carries the validated fields for a new order.
type CreateOrderInput struct {
	CustomerID   string
	Product      string
	Quantity     int
	UnitPrice    float64
	Status       string
	CustomerName string
	Email        string
	Phone        string
	Address      string
}

// CreateOrder validates the input, mints an order identifier and appends one
// row. Validation happens before any external call: a rejected order
// performs no writes. Duplicate submissions are not detected, so a retried
// client request produces a second order.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (models.Order, error) {
	var missing []string
	if input.Product == "" {
		missing = append(missing, "product")
	}
	if input.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if input.UnitPrice <= 0 {
		missing = append(missing, "price")
	}
	if input.CustomerID == "" && input.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if len(missing) > 0 {
		return models.Order{}, NewValidationError(missing...)
	}

	status := input.Status
	if status == "" {
		status = models.OrderStatusPending
	}

	order := models.Order{
		ID:           utils.NewID(utils.OrderIDPrefix),
		CustomerID:   input.CustomerID,
		Product:      input.Product,
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		Status:       status,
		CustomerName: input.CustomerName,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		CreatedAt:    time.Now(),
	}
	if err := s.store.AppendRow(ctx, SheetOrders, order.Row()); err != nil {
		return models.Order{}, err
	}

	s.logger.Info("order created", "order_id", order.ID, "total", order.Total())
	return order, nil
}

// GetOrder reads the Orders sheet and scans linearly for the identifier.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	rows, err := s.store.ReadRows(ctx, SheetOrders)
	if err != nil {
		return models.Order{}, err
	}
	for _, row := range rows {
		order, ok := models.OrderFromRow(row)
		if !ok {
			continue
		}
		if order.ID == orderID {
			return order, nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

// MarkPaid transitions an order to Paid. Both payment paths funnel through
// here, so the Pending -> Paid transition has a single owner. Marking an
// already-Paid order is a no-op: the status never reverts.
func (s *OrderService) MarkPaid(ctx context.Context, orderID string) error {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusPaid {
		return nil
	}

	err = s.store.UpdateCellByKey(ctx, SheetOrders, orderID, models.OrderColStatus, models.OrderStatusPaid)
	if err != nil {
		return err
	}
	s.logger.Info("order marked paid", "order_id", orderID)
	return nil
}
