package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecisionConstructors(t *testing.T) {
	response := &StatusResponse{DeploymentId: "dpl_1", Status: StatusReady, DeploymentURL: "https://example.vercel.app"}

	success := Success(response)
	assert.Equal(t, DecisionSuccess, success.Kind)
	assert.Same(t, response, success.Response)
	assert.Equal(t, "success", success.Kind.String())

	next := Continue("deployment status: BUILDING")
	assert.Equal(t, DecisionContinue, next.Kind)
	assert.Equal(t, "deployment status: BUILDING", next.Reason)
	assert.Equal(t, "continue", next.Kind.String())

	err := errors.New("boom")
	fatal := Fatal(err)
	assert.Equal(t, DecisionFatal, fatal.Kind)
	assert.Equal(t, err, fatal.Err)
	assert.Equal(t, "fatal", fatal.Kind.String())
}

func TestCredentialExpiresIn(t *testing.T) {
	now := time.Unix(1700000000, 0)
	credential := Credential{Token: "token", ExpiresAt: now.Add(45 * time.Second)}

	assert.Equal(t, 45*time.Second, credential.ExpiresIn(now))
}
