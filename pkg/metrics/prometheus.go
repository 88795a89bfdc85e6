package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration.
var defaultDeltaBuckets = []float64{0.5, 1, 2, 4, 8, 12, 16, 20, 24, 28, 32, 48, 64}

// Error kinds used as label values on errors_total.
const (
	ErrorKindNotFound  = "not_found"
	ErrorKindMalformed = "malformed"
	ErrorKindOther     = "other"
)

// Manager owns the Prometheus metrics of a rating run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         *prometheus.Registry

	matchesProcessed prometheus.Counter
	outcomes         *prometheus.CounterVec
	participants     prometheus.Gauge
	ratingDelta      prometheus.Histogram
	runDuration      prometheus.Gauge
	lastRunUnix      prometheus.Gauge
	errors           *prometheus.CounterVec
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry the
// metrics live on a fresh private registry, so default Go collectors are
// never mixed in.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "elorank",
		subsystem:        "run",
		histogramBuckets: defaultDeltaBuckets,
		customLabels:     make(map[string]string),
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.matchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "matches_processed_total",
		Help:        "Total number of match records applied to the rating table",
		ConstLabels: labels,
	})

	m.outcomes = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "outcomes_total",
			Help:        "Applied match records by outcome (left, right, draw)",
			ConstLabels: labels,
		},
		[]string{"outcome"},
	)

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "participants",
		Help:        "Number of rated participants after the run",
		ConstLabels: labels,
	})

	m.ratingDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rating_delta_points",
		Help:        "Absolute rating change per match, in Elo points",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.runDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_seconds",
		Help:        "Wall time of the last run",
		ConstLabels: labels,
	})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_completed_unixtime",
		Help:        "Unix time at which the last run completed",
		ConstLabels: labels,
	})

	m.errors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_total",
			Help:        "Fatal run errors by kind",
			ConstLabels: labels,
		},
		[]string{"kind"},
	)
}

// RecordMatch counts one applied match with its outcome and rating swing.
func (m *Manager) RecordMatch(outcome string, delta float64) {
	m.matchesProcessed.Inc()
	m.outcomes.WithLabelValues(outcome).Inc()
	m.ratingDelta.Observe(math.Abs(delta))
}

// UpdateParticipants sets the participant count.
func (m *Manager) UpdateParticipants(n int) {
	m.participants.Set(float64(n))
}

// RecordRun records a completed run's duration and completion time.
func (m *Manager) RecordRun(elapsed time.Duration, finished time.Time) {
	m.runDuration.Set(elapsed.Seconds())
	m.lastRunUnix.Set(float64(finished.Unix()))
}

// RecordError counts a fatal error of the given kind.
func (m *Manager) RecordError(kind string) {
	m.errors.WithLabelValues(kind).Inc()
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// suitable for the node_exporter textfile collector. The file is written to a
// temporary name and renamed into place.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	return nil
}
