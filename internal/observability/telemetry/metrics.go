package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	CommandsClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aiforus_commands_classified_total",
		Help: "Utterances classified, by intent and classification source",
	}, []string{"intent", "source"})

	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aiforus_commands_handled_total",
		Help: "Commands dispatched to a handler, by intent and outcome",
	}, []string{"intent", "status"})

	EmergencyAlertsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aiforus_emergency_alerts_total",
		Help: "Emergency alerts triggered",
	})

	// Infrastructure metrics
	ModelLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aiforus_hosted_model_latency_seconds",
		Help:    "Hosted model classification latency",
		Buckets: prometheus.DefBuckets,
	})

	VisionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aiforus_vision_latency_seconds",
		Help:    "Vision sidecar call latency, by operation",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aiforus_database_latency_seconds",
		Help:    "Database query latency",
		Buckets: prometheus.DefBuckets,
	})
)
