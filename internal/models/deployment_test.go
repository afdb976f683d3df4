package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusQuery(t *testing.T) {
	t.Run("only project name", func(t *testing.T) {
		query := NewStatusQuery("abc123", "deploy", "my-app", "")

		require.NotNil(t, query.ProjectName)
		assert.Equal(t, "my-app", *query.ProjectName)
		assert.Nil(t, query.ProjectId)
		assert.NoError(t, query.Validate())
		assert.Equal(t, "my-app", query.Project())
	})

	t.Run("only project id", func(t *testing.T) {
		query := NewStatusQuery("abc123", "deploy", "  ", "prj_123")

		assert.Nil(t, query.ProjectName)
		require.NotNil(t, query.ProjectId)
		assert.Equal(t, "prj_123", *query.ProjectId)
		assert.NoError(t, query.Validate())
		assert.Equal(t, "prj_123", query.Project())
	})

	t.Run("no project", func(t *testing.T) {
		query := NewStatusQuery("abc123", "deploy", "", "")

		assert.ErrorIs(t, query.Validate(), ErrProjectRequired)
		assert.Equal(t, "", query.Project())
	})
}

func TestStatusQueryJSON(t *testing.T) {
	query := NewStatusQuery("abc123", "deploy", "my-app", "")

	body, err := json.Marshal(query)
	require.NoError(t, err)

	assert.JSONEq(t, `{"sha":"abc123","jobName":"deploy","vercelProjectName":"my-app","vercelProjectId":null}`, string(body))
}

func TestDeploymentStatus(t *testing.T) {
	testCases := []struct {
		status          DeploymentStatus
		terminalFailure bool
		inProgress      bool
		known           bool
	}{
		{StatusQueued, false, true, true},
		{StatusInitializing, false, true, true},
		{StatusBuilding, false, true, true},
		{StatusReady, false, false, true},
		{StatusError, true, false, true},
		{StatusCanceled, true, false, true},
		{"PENDING_REVIEW", false, true, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.terminalFailure, tc.status.IsTerminalFailure())
			assert.Equal(t, tc.inProgress, tc.status.IsInProgress())
			assert.Equal(t, tc.known, tc.status.IsKnown())
		})
	}
}
