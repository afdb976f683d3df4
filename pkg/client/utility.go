package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/deploy-await/internal/github"
	"github.com/shini4i/deploy-await/internal/helpers"
	"github.com/shini4i/deploy-await/internal/models"
)

const (
	deploymentIdOutput = "deployment-id"
	statusOutput       = "status"
)

// doRequest creates a new authorized HTTP request and sends it using the watcher's client.
func (watcher *Watcher) doRequest(ctx context.Context, method, url, token string, body io.Reader) (*http.Response, error) {
	request, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", "application/json; charset=UTF-8")
	request.Header.Set("Authorization", "Bearer "+token)
	request.Header.Set("X-Request-Id", watcher.requestId)

	// Print the equivalent cURL command for troubleshooting
	if watcher.debugMode {
		if curlCommand, err := helpers.CurlCommandFromRequest(request); err != nil {
			log.Warn().Msgf("Couldn't get cURL command. Got the following error: %s", err)
		} else {
			log.Info().Msgf("Equivalent cURL command: %s", curlCommand)
		}
	}

	return watcher.client.Do(request)
}

// initLogs initializes the logging configuration based on the provided log level and format.
// If the log level string is invalid, it keeps the default InfoLevel.
func initLogs(logLevel string, logFormat string) {
	if logFormat == LogFormatText {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	if level, err := zerolog.ParseLevel(logLevel); err != nil {
		log.Warn().Msgf("Couldn't parse log level. Got the following error: %s", err)
	} else {
		zerolog.SetGlobalLevel(level)
		log.Debug().Msgf("Configured log level: %s", level)
	}
}

// printClientConfiguration prints the effective configuration for debugging.
// Tokens are only reported as present or missing.
func printClientConfiguration(w io.Writer, clientConfig *ClientConfig, options AwaitOptions, query models.StatusQuery) {
	_, _ = fmt.Fprintf(w, "Got the following configuration:\n"+
		"DEPLOY_AWAIT_BASE_URL: %s\n"+
		"GITHUB_JOB: %s\n"+
		"COMMIT: %s\n"+
		"PROJECT: %s\n"+
		"OUTPUT_NAME: %s\n"+
		"TIMEOUT: %s\n"+
		"POLL_INTERVAL: %s\n"+
		"OIDC_AUDIENCE: %s\n\n",
		clientConfig.BaseUrl, query.JobName, query.Sha, query.Project(), options.OutputName,
		options.TimeoutBudget(), clientConfig.PollInterval, clientConfig.Audience)

	if clientConfig.TokenRequestUrl == "" || clientConfig.TokenRequestToken == "" {
		_, _ = fmt.Fprintln(w, "ACTIONS_ID_TOKEN_REQUEST_URL or ACTIONS_ID_TOKEN_REQUEST_TOKEN is not set, make sure the job has the id-token: write permission.")
	}
}

// writeOutputs publishes the deployment URL under the requested name plus id and status.
func writeOutputs(outputPath, outputName string, response *models.StatusResponse) error {
	outputs := []struct {
		name  string
		value string
	}{
		{outputName, response.DeploymentURL},
		{deploymentIdOutput, response.DeploymentId},
		{statusOutput, fmt.Sprintf("Deployment %s is %s", response.DeploymentId, response.Status)},
	}

	for _, output := range outputs {
		if outputPath == "" {
			log.Warn().Msgf("GITHUB_OUTPUT is not set, skipping output %s=%s", output.name, output.value)
			continue
		}
		if err := github.SetOutput(outputPath, output.name, output.value); err != nil {
			return err
		}
	}

	return nil
}
