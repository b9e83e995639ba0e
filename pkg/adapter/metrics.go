package adapter

import (
	dto "github.com/prometheus/client_model/go"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the adapter's in-process counters, registered to a private
// prometheus.Registry rather than the global DefaultRegisterer. This
// module carries no HTTP surface, so nothing ever
// serves these over /metrics; Gather is the only way out, for a caller that
// wants to log or forward them on its own schedule.
type Metrics struct {
	registry       *prometheus.Registry
	jobsProcessed  *prometheus.CounterVec
	jobsFailed     *prometheus.CounterVec
	solveDuration  prometheus.Histogram
	variantsPerJob prometheus.Histogram
}

// NewMetrics creates a fresh, privately-registered metric set.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		jobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "adapter",
			Name:      "jobs_processed_total",
			Help:      "Total number of layout/validation jobs processed, by topic and outcome status.",
		}, []string{"topic", "status"}),
		jobsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roomcraft",
			Subsystem: "adapter",
			Name:      "jobs_failed_total",
			Help:      "Total number of jobs that failed, by topic and error kind.",
		}, []string{"topic", "kind"}),
		solveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roomcraft",
			Subsystem: "adapter",
			Name:      "solve_duration_seconds",
			Help:      "Wall-clock time spent running the full layout pipeline for one job.",
			Buckets:   prometheus.DefBuckets,
		}),
		variantsPerJob: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roomcraft",
			Subsystem: "adapter",
			Name:      "variants_per_job",
			Help:      "Number of distinct layout variants returned per completed layout job.",
			Buckets:   []float64{0, 1, 2, 3},
		}),
	}
}

// RecordJob records one job's outcome and the pipeline's wall-clock time.
func (m *Metrics) RecordJob(topic string, status ResultStatus, durationSeconds float64) {
	m.jobsProcessed.WithLabelValues(topic, string(status)).Inc()
	m.solveDuration.Observe(durationSeconds)
}

// RecordFailure records a failed job's error kind.
func (m *Metrics) RecordFailure(topic, kind string) {
	m.jobsFailed.WithLabelValues(topic, kind).Inc()
}

// RecordVariants records how many layout variants a completed job produced.
func (m *Metrics) RecordVariants(n int) {
	m.variantsPerJob.Observe(float64(n))
}

// Gather returns the current snapshot of every registered metric family.
func (m *Metrics) Gather() ([]*dto.MetricFamily, error) {
	return m.registry.Gather()
}
