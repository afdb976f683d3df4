package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientConfig(t *testing.T) {
	t.Setenv("DEPLOY_AWAIT_BASE_URL", "http://localhost:8080")
	t.Setenv("GITHUB_SHA", "0123456789abcdef")
	t.Setenv("GITHUB_JOB", "deploy")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_URL", "http://localhost:9090/token?api-version=2.0")
	t.Setenv("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "ambient-token")
	t.Setenv("POLL_INTERVAL", "2s")
	t.Setenv("DEBUG", "true")

	t.Run("Successfully generated", func(t *testing.T) {
		config, err := NewClientConfig()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080", config.BaseUrl)
		assert.Equal(t, "0123456789abcdef", config.Sha)
		assert.Equal(t, "deploy", config.JobName)
		assert.Equal(t, "/tmp/event.json", config.EventPath)
		assert.Equal(t, "http://localhost:9090/token?api-version=2.0", config.TokenRequestUrl)
		assert.Equal(t, "ambient-token", config.TokenRequestToken)
		assert.Equal(t, "deploy-await", config.Audience)
		assert.Equal(t, 2*time.Second, config.PollInterval)
		assert.Equal(t, 30*time.Second, config.RequestTimeout)
		assert.Equal(t, "text", config.LogFormat)
		assert.True(t, config.Debug)
	})

	t.Run("Invalid duration", func(t *testing.T) {
		t.Setenv("POLL_INTERVAL", "invalid")

		_, err := NewClientConfig()
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "PollInterval")
	})

	t.Run("Missing job name", func(t *testing.T) {
		t.Setenv("GITHUB_JOB", "")

		_, err := NewClientConfig()
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "JobName")
	})

	t.Run("Invalid log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := NewClientConfig()
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestAwaitOptionsValidate(t *testing.T) {
	testCases := []struct {
		name    string
		options AwaitOptions
		valid   bool
	}{
		{"project name", AwaitOptions{ProjectName: "web", OutputName: "url", Timeout: 600}, true},
		{"project id", AwaitOptions{ProjectId: "prj_1", OutputName: "url", Timeout: 1}, true},
		{"no project", AwaitOptions{OutputName: "url", Timeout: 600}, false},
		{"no output name", AwaitOptions{ProjectName: "web", Timeout: 600}, false},
		{"zero timeout", AwaitOptions{ProjectName: "web", OutputName: "url", Timeout: 0}, false},
		{"negative timeout", AwaitOptions{ProjectName: "web", OutputName: "url", Timeout: -5}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.options.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, IsConfigError(err))
			}
		})
	}
}

func TestAwaitOptionsTimeoutBudget(t *testing.T) {
	options := AwaitOptions{Timeout: DefaultTimeoutSeconds}
	assert.Equal(t, 10*time.Minute, options.TimeoutBudget())
}
