package services

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/cloud30/cloud30-sales-api/metrics"
	"github.com/cloud30/cloud30-sales-api/models"
)

// ReconcileReport summarizes one consistency sweep over the ledgers.
type ReconcileReport struct {
	PaymentsChecked int `json:"payments_checked"`

	// OrdersRepaired counts orders a verified payment had covered but whose
	// status write originally failed, now transitioned to Paid.
	OrdersRepaired int `json:"orders_repaired"`
	RepairFailures int `json:"repair_failures"`

	// DuplicateCustomerEmails lists emails appearing on more than one
	// customer row, the accepted failure mode of unlocked customer creation.
	DuplicateCustomerEmails []string `json:"duplicate_customer_emails,omitempty"`
}

// ReconcileService periodically scans the Payments ledger for verified
// payments whose order is still Pending and retries just the failed status
// write, instead of replaying whole payment operations. It also reports
// duplicate customer rows; it never merges or deletes them.
type ReconcileService struct {
	store   TabularStore
	orders  *OrderService
	cron    *cron.Cron
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewReconcileService creates the sweep.
func NewReconcileService(store TabularStore, orders *OrderService, logger *slog.Logger, m *metrics.Metrics) *ReconcileService {
	return &ReconcileService{
		store:   store,
		orders:  orders,
		logger:  logger.With("component", "reconcile"),
		metrics: m,
	}
}

// StartScheduler runs the sweep on the given cron schedule until Stop.
func (s *ReconcileService) StartScheduler(schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.Run(context.Background()); err != nil {
			s.logger.Error("scheduled sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("reconciliation scheduler started", "schedule", schedule)
	return nil
}

// Stop halts the scheduler.
func (s *ReconcileService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Run executes one sweep.
func (s *ReconcileService) Run(ctx context.Context) (ReconcileReport, error) {
	report := ReconcileReport{}

	paymentRows, err := s.store.ReadRows(ctx, SheetPayments)
	if err != nil {
		return report, err
	}
	orderRows, err := s.store.ReadRows(ctx, SheetOrders)
	if err != nil {
		return report, err
	}

	statusByOrder := make(map[string]string, len(orderRows))
	for _, row := range orderRows {
		order, ok := models.OrderFromRow(row)
		if !ok {
			continue
		}
		statusByOrder[order.ID] = order.Status
	}

	repaired := make(map[string]bool)
	for _, row := range paymentRows {
		payment, ok := models.PaymentFromRow(row)
		if !ok || !payment.Verified {
			continue
		}
		report.PaymentsChecked++

		status, known := statusByOrder[payment.OrderID]
		if !known || status != models.OrderStatusPending || repaired[payment.OrderID] {
			continue
		}

		if err := s.orders.MarkPaid(ctx, payment.OrderID); err != nil {
			report.RepairFailures++
			s.logger.Error("repair failed", "order_id", payment.OrderID, "payment_id", payment.ID, "error", err)
			continue
		}
		repaired[payment.OrderID] = true
		report.OrdersRepaired++
		if s.metrics != nil {
			s.metrics.Inconsistencies.WithLabelValues("payment_without_status", "repaired").Inc()
		}
		s.logger.Warn("repaired order left pending by a verified payment",
			"order_id", payment.OrderID, "payment_id", payment.ID)
	}

	report.DuplicateCustomerEmails, err = s.duplicateCustomerEmails(ctx)
	if err != nil {
		return report, err
	}
	for range report.DuplicateCustomerEmails {
		if s.metrics != nil {
			s.metrics.Inconsistencies.WithLabelValues("duplicate_customer", "found").Inc()
		}
	}

	s.logger.Info("sweep complete",
		"payments_checked", report.PaymentsChecked,
		"orders_repaired", report.OrdersRepaired,
		"duplicate_customers", len(report.DuplicateCustomerEmails))
	return report, nil
}

func (s *ReconcileService) duplicateCustomerEmails(ctx context.Context) ([]string, error) {
	rows, err := s.store.ReadRows(ctx, SheetCustomers)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int)
	for _, row := range rows {
		customer, ok := models.CustomerFromRow(row)
		if !ok || customer.Email == "" {
			continue
		}
		seen[customer.Email]++
	}

	var duplicates []string
	for email, count := range seen {
		if count > 1 {
			duplicates = append(duplicates, email)
		}
	}
	return duplicates, nil
}
