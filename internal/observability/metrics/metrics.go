// Package metrics exposes application-level prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Metrics holds the counters the handlers record into. Everything is
// registered on a dedicated registry so tests can instantiate freely.
type Metrics struct {
	Registry *prometheus.Registry

	DocumentsSaved  *prometheus.CounterVec
	PricingPreviews prometheus.Counter
	SaveFailures    *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

// Module provides the metrics registry and instruments.
var Module = fx.Module("metrics",
	fx.Provide(New),
)

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		Registry: reg,
		DocumentsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bahikhata_documents_saved_total",
			Help: "Documents saved, by document type.",
		}, []string{"type"}),
		PricingPreviews: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bahikhata_pricing_previews_total",
			Help: "Stateless pricing preview evaluations.",
		}),
		SaveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bahikhata_document_save_failures_total",
			Help: "Save attempts rejected, by failure kind.",
		}, []string{"reason"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bahikhata_http_requests_total",
			Help: "HTTP requests, by method, path and status.",
		}, []string{"method", "path", "status"}),
	}
	reg.MustRegister(m.DocumentsSaved, m.PricingPreviews, m.SaveFailures, m.HTTPRequests)
	return m
}
