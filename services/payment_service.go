package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloud30/cloud30-sales-api/metrics"
	"github.com/cloud30/cloud30-sales-api/models"
	"github.com/cloud30/cloud30-sales-api/utils"
)

// PaymentVerifier decides whether a payment against an order counts as
// verified. The two variants are the manual amount-threshold comparison and
// the gateway callback; both feed the same recording and status-transition
// path.
type PaymentVerifier interface {
	Verify(ctx context.Context, order models.Order, payment *models.Payment) (bool, error)
}

// AmountThresholdVerifier marks a payment verified when it covers or exceeds
// the order total. Partial payments do not accumulate: a second partial
// payment is compared against the full total on its own.
type AmountThresholdVerifier struct{}

// Verify implements PaymentVerifier.
func (AmountThresholdVerifier) Verify(ctx context.Context, order models.Order, payment *models.Payment) (bool, error) {
	return payment.AmountPaid >= order.Total(), nil
}

// PaymentService records payments against the Payments ledger and reconciles
// them with their orders.
type PaymentService struct {
	store   TabularStore
	orders  *OrderService
	gateway PaystackInterface
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewPaymentService creates a payment reconciler.
func NewPaymentService(store TabularStore, orders *OrderService, gateway PaystackInterface, logger *slog.Logger, m *metrics.Metrics) *PaymentService {
	return &PaymentService{
		store:   store,
		orders:  orders,
		gateway: gateway,
		logger:  logger.With("component", "payments"),
		metrics: m,
	}
}

// RecordPaymentInput carries the fields of a manual payment submission.
type RecordPaymentInput struct {
	OrderID    string
	AmountPaid float64
	Method     string
	PayerName  string
	Reference  string
	Notes      string
}

// PaymentResult reports the outcome of recording a payment.
type PaymentResult struct {
	Payment         models.Payment `json:"payment"`
	Verified        bool           `json:"verified"`
	OrderMarkedPaid bool           `json:"order_marked_paid"`

	// StatusUpdateFailed is set when the payment row was appended but the
	// follow-up order status write failed. The payment is durable; the order
	// is left Pending until the consistency sweep repairs it.
	StatusUpdateFailed bool `json:"status_update_failed,omitempty"`
}

// RecordPayment validates the submission, reconciles the amount against the
// order total and appends a payment row. The row is appended whether or not
// the payment verifies; only a verified payment transitions the order to
// Paid. The append and the status write are two independent calls with no
// transaction around them.
func (s *PaymentService) RecordPayment(ctx context.Context, input RecordPaymentInput) (PaymentResult, error) {
	var missing []string
	if input.OrderID == "" {
		missing = append(missing, "orderId")
	}
	if input.AmountPaid <= 0 {
		missing = append(missing, "amountPaid")
	}
	if input.Method == "" {
		missing = append(missing, "paymentMethod")
	}
	if input.PayerName == "" {
		missing = append(missing, "payerName")
	}
	if len(missing) > 0 {
		return PaymentResult{}, NewValidationError(missing...)
	}

	order, err := s.orders.GetOrder(ctx, input.OrderID)
	if err != nil {
		return PaymentResult{}, err
	}

	payment := models.Payment{
		ID:         utils.NewID(utils.PaymentIDPrefix),
		OrderID:    input.OrderID,
		AmountPaid: input.AmountPaid,
		Method:     input.Method,
		Reference:  input.Reference,
		PayerName:  input.PayerName,
		CreatedAt:  time.Now(),
		Notes:      input.Notes,
		Source:     models.PaymentSourceManual,
	}

	verified, err := AmountThresholdVerifier{}.Verify(ctx, order, &payment)
	if err != nil {
		return PaymentResult{}, err
	}
	payment.Verified = verified

	return s.record(ctx, payment, verified)
}

// VerifyGatewayPayment is the alternate payment path: the gateway is asked
// for the authoritative transaction state, no local amount comparison is
// performed. The orderID is optional; when present it must exist and a
// successful verification transitions it to Paid through the same path as a
// manual payment.
func (s *PaymentService) VerifyGatewayPayment(ctx context.Context, reference, orderID string) (PaymentResult, error) {
	if reference == "" {
		return PaymentResult{}, NewValidationError("reference")
	}

	if orderID != "" {
		if _, err := s.orders.GetOrder(ctx, orderID); err != nil {
			return PaymentResult{}, err
		}
	}

	tx, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return PaymentResult{}, err
	}

	recordedOrderID := orderID
	if recordedOrderID == "" {
		recordedOrderID = "N/A"
	}

	payment := models.Payment{
		ID:         utils.ReferenceID(utils.PaymentIDPrefix, reference),
		OrderID:    recordedOrderID,
		AmountPaid: tx.Amount,
		Method:     tx.Channel,
		Reference:  reference,
		PayerName:  tx.PayerName,
		CreatedAt:  time.Now(),
		Verified:   true,
		Source:     models.PaymentSourceGateway,
	}

	markPaid := orderID != ""
	return s.record(ctx, payment, markPaid)
}

// record appends the payment row and, when asked, transitions the order.
// A failed status write after a durable append is reported, not hidden: the
// caller gets the payment id together with the inconsistency flag.
func (s *PaymentService) record(ctx context.Context, payment models.Payment, markPaid bool) (PaymentResult, error) {
	if err := s.store.AppendRow(ctx, SheetPayments, payment.Row()); err != nil {
		return PaymentResult{}, err
	}

	result := PaymentResult{Payment: payment, Verified: payment.Verified}
	if !markPaid {
		s.logger.Info("payment recorded", "payment_id", payment.ID, "order_id", payment.OrderID, "verified", payment.Verified)
		return result, nil
	}

	if err := s.orders.MarkPaid(ctx, payment.OrderID); err != nil {
		result.StatusUpdateFailed = true
		if s.metrics != nil {
			s.metrics.Inconsistencies.WithLabelValues("payment_without_status", "found").Inc()
		}
		s.logger.Error("payment recorded but status update failed",
			"payment_id", payment.ID, "order_id", payment.OrderID, "error", err)
		return result, nil
	}

	result.OrderMarkedPaid = true
	s.logger.Info("payment recorded", "payment_id", payment.ID, "order_id", payment.OrderID, "verified", payment.Verified)
	return result, nil
}
