package controllers

import (
	"context"
	"log/slog"

	"github.com/cloud30/cloud30-sales-api/metrics"
	"github.com/cloud30/cloud30-sales-api/services"
)

var (
	logger     = slog.Default()
	appMetrics *metrics.Metrics
)

// Init hands the controllers the process-wide logger and metrics. The
// external-service clients themselves are owned by the services package and
// reached through its accessors; nothing here constructs a client per call.
func Init(l *slog.Logger, m *metrics.Metrics) {
	logger = l
	appMetrics = m
}

func customerService() *services.CustomerService {
	return services.NewCustomerService(services.GetTabularStore(), logger)
}

func orderService() *services.OrderService {
	return services.NewOrderService(services.GetTabularStore(), logger)
}

func paymentService() *services.PaymentService {
	return services.NewPaymentService(services.GetTabularStore(), orderService(), services.GetPaystackService(), logger, appMetrics)
}

func invoiceService() *services.InvoiceService {
	return services.NewInvoiceService(services.GetTabularStore(), orderService(), services.GetDocumentStore(), services.GetMailService(), logger, appMetrics)
}

func reconcileService() *services.ReconcileService {
	return services.NewReconcileService(services.GetTabularStore(), orderService(), logger, appMetrics)
}

// logActivity appends to the workspace database log. The log is best-effort
// by contract: failures are warned about and swallowed.
func logActivity(ctx context.Context, title, detail string) {
	workspace := services.GetWorkspaceLog()
	if workspace == nil {
		return
	}
	if err := workspace.LogActivity(ctx, title, detail); err != nil {
		logger.Warn("workspace log append failed", "title", title, "error", err)
	}
}
