package prometheus

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeTimedOut  = "timed_out"
)

// MetricsInterface defines the interface for the metrics service. This is required
// for dependency injection and mocking in tests.
type MetricsInterface interface {
	AddPoll(decision string)
	AddCredentialRefresh()
	ObserveWait(outcome string, duration time.Duration)
}

// Metrics contains all the prometheus collectors of a single wait run.
type Metrics struct {
	Polls               *prometheus.CounterVec
	CredentialRefreshes prometheus.Counter
	WaitDuration        *prometheus.HistogramVec
}

// NewMetrics creates and registers the metrics with the provided Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "deploy_await_polls_total",
			Help: "The number of status polls grouped by the resulting decision.",
		}, []string{"decision"}),
		CredentialRefreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deploy_await_credential_refreshes_total",
			Help: "The number of times the OIDC token was refreshed during a wait.",
		}),
		WaitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "deploy_await_wait_duration_seconds",
			Help:    "How long the step waited for the deployment.",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 1200, 1800},
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.Polls, m.CredentialRefreshes, m.WaitDuration)

	return m
}

// AddPoll increments the poll counter for the given decision.
func (m *Metrics) AddPoll(decision string) {
	m.Polls.WithLabelValues(decision).Inc()
}

// AddCredentialRefresh increments the CredentialRefreshes counter.
func (m *Metrics) AddCredentialRefresh() {
	m.CredentialRefreshes.Inc()
}

// ObserveWait records the total wait duration for the outcome.
func (m *Metrics) ObserveWait(outcome string, duration time.Duration) {
	m.WaitDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// Push sends everything gathered to a Pushgateway, replacing the previous
// values of the same job and grouping.
func Push(ctx context.Context, url, job string, gatherer prometheus.Gatherer, grouping map[string]string) error {
	pusher := push.New(url, job).Gatherer(gatherer)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}
	return pusher.PushContext(ctx)
}
