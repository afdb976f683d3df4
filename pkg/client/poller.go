package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/shini4i/deploy-await/internal/models"
)

const awaitDeploymentPath = "/api/integrations/v1/actions/await-vercel-deployment"

// Poll sends a single status request and classifies the outcome.
// It never retries; repeating the call is up to the caller.
func (watcher *Watcher) Poll(ctx context.Context, credential models.Credential, query models.StatusQuery) models.Decision {
	requestBody, err := json.Marshal(query)
	if err != nil {
		return models.Fatal(NewServiceFatalError(0, fmt.Sprintf("could not encode status query: %s", err)))
	}

	url := fmt.Sprintf("%s%s", watcher.baseUrl, awaitDeploymentPath)

	response, err := watcher.doRequest(ctx, http.MethodPost, url, credential.Token, bytes.NewReader(requestBody))
	if err != nil {
		return models.Continue(fmt.Sprintf("transient network error: %s", err))
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Msgf("failed to close response body: %v", err)
		}
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return models.Continue(fmt.Sprintf("transient network error: %s", err))
	}

	return classifyResponse(response.StatusCode, body)
}

// classifyResponse maps an HTTP status code and body to a decision.
// Request errors (400, 403, 409) and server errors are fatal, 404 means the
// deployment has not been created yet, other failures are retried.
func classifyResponse(statusCode int, body []byte) models.Decision {
	switch {
	case statusCode == http.StatusBadRequest:
		return models.Fatal(httpFailure("configuration error", statusCode, body))
	case statusCode == http.StatusForbidden:
		return models.Fatal(httpFailure("authorization error", statusCode, body))
	case statusCode == http.StatusConflict:
		return models.Fatal(httpFailure("conflict error", statusCode, body))
	case statusCode >= 500 && statusCode <= 599:
		return models.Fatal(httpFailure("server error", statusCode, body))
	case statusCode == http.StatusNotFound:
		return models.Continue("deployment not found yet")
	case statusCode < 200 || statusCode >= 300:
		return models.Continue(fmt.Sprintf("API request failed: %s", describeResponse(statusCode, body)))
	}

	var response models.StatusResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.Continue(fmt.Sprintf("invalid response: %s", err))
	}

	switch {
	case response.Status == models.StatusReady:
		if response.DeploymentURL == "" {
			return models.Fatal(NewDeploymentFailedError(response.Status, "ready but no URL provided"))
		}
		return models.Success(&response)
	case response.Status.IsTerminalFailure():
		return models.Fatal(NewDeploymentFailedError(response.Status, fmt.Sprintf("deployment failed with status: %s", response.Status)))
	case response.Status.IsKnown():
		return models.Continue(fmt.Sprintf("deployment status: %s", response.Status))
	default:
		return models.Continue(fmt.Sprintf("unknown deployment status: %s", response.Status))
	}
}

func httpFailure(category string, statusCode int, body []byte) *ServiceFatalError {
	return NewServiceFatalError(statusCode, fmt.Sprintf("%s: %s", category, describeResponse(statusCode, body)))
}

func describeResponse(statusCode int, body []byte) string {
	return fmt.Sprintf("%d %s\n%s", statusCode, http.StatusText(statusCode), strings.TrimSpace(string(body)))
}
