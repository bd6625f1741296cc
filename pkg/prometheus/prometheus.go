package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	UpdateCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Count of processed updates",
		},
		[]string{"kind", "status"},
	)
	UpdateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_update_duration_seconds",
			Help:    "Time taken to process one update",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"kind"},
	)
	ActiveFlows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_flows_total",
			Help: "Number of unfinished conversations",
		},
	)

	RequestsAssigned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_requests_assigned_total",
			Help: "Count of requests assigned to drivers",
		},
	)
	DocumentsForwarded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_documents_forwarded_total",
			Help: "Count of documents forwarded to admins",
		},
	)
	AuditFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_audit_failures_total",
			Help: "Count of failed audit log appends",
		},
	)

	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_api_failures_total",
			Help: "Count of failed API calls",
		},
		[]string{"method"},
	)
	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent messages",
		},
		[]string{"type"}, // text, photo, document
	)
)

func Init() {
	prometheus.MustRegister(
		UpdateCounter,
		UpdateDuration,
		ActiveFlows,
		RequestsAssigned,
		DocumentsForwarded,
		AuditFailures,
		APIFailures,
		MessagesSent,
	)
}
