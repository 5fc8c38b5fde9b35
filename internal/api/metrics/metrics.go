// Package metrics defines the Prometheus metrics for the bullyguard web app.
// All metrics register with the default registry through promauto and are
// served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bullyguard"

// ── Classification ───────────────────────────────────────────────────────────

// PredictionsTotal counts successful classifications.
// Label:
//   - label: "bullying" or "notbullying"
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of texts classified, by predicted label.",
	},
	[]string{"label"},
)

// ClassificationDuration measures embed + model time per text, failures included.
var ClassificationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classification_duration_seconds",
		Help:      "Duration of a single text classification.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Accounts ─────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// ── Analytics ────────────────────────────────────────────────────────────────

// WordCloudRendersTotal counts word-cloud renders.
// Label:
//   - result: "ok" or "error"
var WordCloudRendersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wordcloud_renders_total",
		Help:      "Total number of word-cloud renders, by result.",
	},
	[]string{"result"},
)

// ── HTTP ─────────────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests. route is the registered path
// pattern, not the raw URL, to keep cardinality bounded.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// WordCloudQueueWaiting is the number of renders waiting for a free worker.
var WordCloudQueueWaiting = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "wordcloud_queue_waiting",
		Help:      "Current number of word-cloud renders waiting for a render worker.",
	},
)
