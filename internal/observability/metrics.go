package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hazard_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline and API.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Assessment metrics.
	Assessments          *prometheus.CounterVec   // labels: hazard, risk_level
	RejectedInputs       *prometheus.CounterVec   // labels: hazard, reason={invalid_coordinate,invalid_category,unknown_hazard,malformed}
	AssessmentConfidence *prometheus.HistogramVec // labels: hazard

	HTTPRequests *prometheus.CounterVec // labels: route, status

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: method={forward,reverse}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec   // labels: method={forward,reverse}, result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: method={forward,reverse}
	GeocodeEnabled     prometheus.Gauge
}

var confidenceBuckets = []float64{0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total observation messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total assessment messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total observations that could not be assessed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Assessments produced by hazard and risk level.",
		}, []string{"hazard", "risk_level"}),
		RejectedInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_inputs_total",
			Help:      "Observations rejected before scoring, by hazard and reason.",
		}, []string{"hazard", "reason"}),
		AssessmentConfidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_confidence",
			Help:      "Confidence score of produced assessments.",
			Buckets:   confidenceBuckets,
		}, []string{"hazard"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Predict API requests by route and status code.",
		}, []string{"route", "status"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "geocode_enabled",
			Help:      "1 when geocoding enrichment is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Assessments,
		m.RejectedInputs,
		m.AssessmentConfidence,
		m.HTTPRequests,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_processing_duration_seconds"}),
		Assessments:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "assessments_total"}, []string{"hazard", "risk_level"}),
		RejectedInputs:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "rejected_inputs_total"}, []string{"hazard", "reason"}),
		AssessmentConfidence:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "assessment_confidence", Buckets: confidenceBuckets}, []string{"hazard"}),
		HTTPRequests:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total"}, []string{"route", "status"}),
		GeocodeRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_requests_total"}, []string{"method", "outcome"}),
		GeocodeCache:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "geocode_cache_total"}, []string{"method", "result"}),
		GeocodeAPIDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: "geocode_api_duration_seconds"}, []string{"method"}),
		GeocodeEnabled:          prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "geocode_enabled"}),
	}
}
