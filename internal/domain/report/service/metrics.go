package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the parse-side Prometheus collectors. They are created per
// service against a caller-supplied registerer so tests can use isolated
// registries.
type Metrics struct {
	parsesTotal   prometheus.Counter
	rejectedTotal prometheus.Counter
	lineErrors    prometheus.Counter
	itemsParsed   prometheus.Counter
	parseDuration prometheus.Histogram
}

// NewMetrics builds and registers the parse metrics. A nil registerer
// leaves the collectors unregistered but still usable.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		parsesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockstatus_parses_total",
			Help: "Total number of report parses attempted",
		}),
		rejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockstatus_rejected_documents_total",
			Help: "Documents rejected by the sanity check",
		}),
		lineErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockstatus_line_errors_total",
			Help: "Lines skipped with a recoverable parse error",
		}),
		itemsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stockstatus_items_parsed_total",
			Help: "Inventory item records emitted",
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stockstatus_parse_duration_seconds",
			Help:    "Wall time of one report parse",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.parsesTotal, m.rejectedTotal, m.lineErrors, m.itemsParsed, m.parseDuration)
	}
	return m
}
