package prometheus

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AddPoll(t *testing.T) {
	// Arrange
	m := NewMetrics(prometheus.NewRegistry())
	expectedMetric := `
		# HELP deploy_await_polls_total The number of status polls grouped by the resulting decision.
		# TYPE deploy_await_polls_total counter
		deploy_await_polls_total{decision="continue"} 2
		deploy_await_polls_total{decision="success"} 1
	`

	// Act
	m.AddPoll("continue")
	m.AddPoll("continue")
	m.AddPoll("success")

	// Assert
	err := testutil.CollectAndCompare(m.Polls, strings.NewReader(expectedMetric))
	assert.NoError(t, err)
}

func TestMetrics_AddCredentialRefresh(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.AddCredentialRefresh()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CredentialRefreshes))
}

func TestMetrics_ObserveWait(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveWait(OutcomeTimedOut, 10*time.Minute)

	assert.Equal(t, 1, testutil.CollectAndCount(m.WaitDuration, "deploy_await_wait_duration_seconds"))
}

func TestPush(t *testing.T) {
	var (
		method string
		path   string
		body   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	m.AddPoll("success")

	err := Push(context.Background(), server.URL, "deploy-await", registry, map[string]string{"project": "web"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/deploy-await/project/web", path)
	assert.NotEmpty(t, body)
}

func TestPushFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	registry := prometheus.NewRegistry()
	NewMetrics(registry)

	err := Push(context.Background(), server.URL, "deploy-await", registry, nil)
	assert.Error(t, err)
}
