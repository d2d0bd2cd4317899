package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	SheetRequests   *prometheus.CounterVec
	GatewayRequests *prometheus.CounterVec
	GatewayLatency  *prometheus.HistogramVec
	DocumentsStored *prometheus.CounterVec
	EmailsSent      *prometheus.CounterVec
	Inconsistencies *prometheus.CounterVec
	Errors          *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			SheetRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "sheet_requests_total",
				Help:      "Total tabular store calls by sheet, operation and outcome.",
			}, []string{"sheet", "op", "status"}),
			GatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_requests_total",
				Help:      "Total payment gateway verification requests by outcome.",
			}, []string{"status"}),
			GatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_request_duration_seconds",
				Help:      "Latency distribution for payment gateway calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"status"}),
			DocumentsStored: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_stored_total",
				Help:      "Total invoice documents uploaded by outcome.",
			}, []string{"status"}),
			EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "emails_sent_total",
				Help:      "Total mail deliveries attempted by kind and outcome.",
			}, []string{"kind", "status"}),
			Inconsistencies: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "inconsistencies_total",
				Help:      "Cross-record inconsistencies found and repaired by the sweep.",
			}, []string{"kind", "action"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.SheetRequests,
			metricsInstance.GatewayRequests,
			metricsInstance.GatewayLatency,
			metricsInstance.DocumentsStored,
			metricsInstance.EmailsSent,
			metricsInstance.Inconsistencies,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
