package services

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	entriesCreated            *prometheus.CounterVec
	alertsDispatched          *prometheus.CounterVec
	budgetChecks              *prometheus.CounterVec
	statsDuration             prometheus.Histogram
	authenticationEventsTotal *prometheus.CounterVec
}

var (
	prometheusMetricsOnce sync.Once
	prometheusMetrics     *PrometheusMetrics
)

// NewPrometheusMetrics returns the process-wide metrics recorder. Collectors
// are registered on the default registry exactly once, so the constructor is
// safe to call from multiple server instances.
func NewPrometheusMetrics() MetricsRecorderInterface {
	prometheusMetricsOnce.Do(func() {
		prometheusMetrics = &PrometheusMetrics{
			entriesCreated: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "entries_created_total",
					Help: "Total number of entries created by type",
				},
				[]string{"type"},
			),
			alertsDispatched: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "budget_alerts_dispatched_total",
					Help: "Total number of budget alert dispatch attempts by outcome",
				},
				[]string{"status"},
			),
			budgetChecks: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "budget_checks_total",
					Help: "Total number of budget checks by result",
				},
				[]string{"result"},
			),
			statsDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Name:    "stats_aggregation_duration_milliseconds",
					Help:    "Stats aggregation duration in milliseconds",
					Buckets: prometheus.ExponentialBuckets(1, 2, 12),
				},
			),
			authenticationEventsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "authentication_events_total",
					Help: "Total number of authentication events",
				},
				[]string{"event_type"},
			),
		}
	})
	return prometheusMetrics
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "entry_created":
		if entryType := tags["type"]; entryType != "" {
			m.entriesCreated.WithLabelValues(entryType).Inc()
		}
	case "alert_dispatched":
		if status := tags["status"]; status != "" {
			m.alertsDispatched.WithLabelValues(status).Inc()
		}
	case "budget_check":
		if result := tags["result"]; result != "" {
			m.budgetChecks.WithLabelValues(result).Inc()
		}
	case "authentication_event":
		if eventType := tags["event_type"]; eventType != "" {
			m.authenticationEventsTotal.WithLabelValues(eventType).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch name {
	case "stats_aggregation":
		m.statsDuration.Observe(float64(duration.Milliseconds()))
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	// No gauges yet; method satisfies MetricsRecorderInterface
}
