package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for onboarding review and finalize.
type Metrics struct {
	// Finalize runs by outcome: "completed", "blocked", "failed", "conflict"
	FinalizeRuns *prometheus.CounterVec

	// Saga step latency and failures by step name
	StepLatency  *prometheus.HistogramVec
	StepFailures *prometheus.CounterVec

	// Child records by kind ("document", "credential", "assignment") and result ("created", "skipped")
	ChildRecords *prometheus.CounterVec

	// Access actions taken: "none", "provision", "link"
	AccessActions *prometheus.CounterVec

	// Blocking issues seen on review, by issue key
	BlockingIssues *prometheus.CounterVec

	FinalizeLatency prometheus.Histogram
}

// New creates a new Metrics instance with all onboarding metrics registered.
func New() *Metrics {
	return &Metrics{
		FinalizeRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carehub_onboarding_finalize_runs_total",
			Help: "Finalize runs by outcome",
		}, []string{"outcome"}),

		StepLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "carehub_onboarding_step_duration_seconds",
			Help:    "Duration of finalize saga steps",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"step"}),

		StepFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carehub_onboarding_step_failures_total",
			Help: "Finalize saga step failures by step",
		}, []string{"step"}),

		ChildRecords: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carehub_onboarding_child_records_total",
			Help: "Child records handled during finalize by kind and result",
		}, []string{"kind", "result"}),

		AccessActions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carehub_onboarding_access_actions_total",
			Help: "System access actions applied during finalize",
		}, []string{"action"}),

		BlockingIssues: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "carehub_onboarding_blocking_issues_total",
			Help: "Blocking review issues by key",
		}, []string{"key"}),

		FinalizeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "carehub_onboarding_finalize_duration_seconds",
			Help:    "Duration of full finalize runs",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) IncrementFinalize(outcome string) {
	if m != nil {
		m.FinalizeRuns.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveStep(step string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.StepLatency.WithLabelValues(step).Observe(d.Seconds())
	if err != nil {
		m.StepFailures.WithLabelValues(step).Inc()
	}
}

func (m *Metrics) IncrementChildRecord(kind, result string) {
	if m != nil {
		m.ChildRecords.WithLabelValues(kind, result).Inc()
	}
}

func (m *Metrics) IncrementAccessAction(action string) {
	if m != nil {
		m.AccessActions.WithLabelValues(action).Inc()
	}
}

func (m *Metrics) IncrementBlockingIssue(key string) {
	if m != nil {
		m.BlockingIssues.WithLabelValues(key).Inc()
	}
}

func (m *Metrics) ObserveFinalizeLatency(d time.Duration) {
	if m != nil {
		m.FinalizeLatency.Observe(d.Seconds())
	}
}
