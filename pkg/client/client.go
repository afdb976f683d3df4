package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/deploy-await/internal/github"
	"github.com/shini4i/deploy-await/internal/models"
	"github.com/shini4i/deploy-await/internal/prometheus"
)

const (
	registerCheckPath = "/api/integrations/v1/actions/register-vercel-check"

	metricsJobName = "deploy-await"
)

// Watcher talks to the deployment status service.
// All requests of one process share a request id, so retried polls are
// recognizable as repetitions of the same query on the service side.
type Watcher struct {
	baseUrl   string
	client    *http.Client
	debugMode bool
	requestId string
}

func NewWatcher(baseUrl string, debugMode bool, client *http.Client) *Watcher {
	return &Watcher{
		baseUrl:   strings.TrimSuffix(baseUrl, "/"),
		client:    client,
		debugMode: debugMode,
		requestId: uuid.NewString(),
	}
}

// RegisterCheck announces the commit to the check-registration service.
// Anything but HTTP 200 is reported as ServiceFatalError.
func (watcher *Watcher) RegisterCheck(ctx context.Context, credential models.Credential, sha string) error {
	requestBody, err := json.Marshal(models.RegisterCheckRequest{Sha: sha})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s%s", watcher.baseUrl, registerCheckPath)

	response, err := watcher.doRequest(ctx, http.MethodPost, url, credential.Token, bytes.NewReader(requestBody))
	if err != nil {
		return err
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Msgf("failed to close response body: %v", err)
		}
	}(response.Body)

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return httpFailure("check registration failed", response.StatusCode, body)
	}

	return nil
}

// Run waits for the deployment of the current commit and publishes its URL as step output.
func Run(ctx context.Context, options AwaitOptions) error {
	clientConfig, err := NewClientConfig()
	if err != nil {
		return err
	}

	initLogs(clientConfig.LogLevel, clientConfig.LogFormat)

	if err := options.Validate(); err != nil {
		return err
	}

	sha, err := github.NewCommitResolver(github.GitClient{}).Resolve(clientConfig.EventPath, clientConfig.Sha, clientConfig.Workspace)
	if err != nil {
		return NewConfigError("GITHUB_SHA", err.Error())
	}

	query := models.NewStatusQuery(sha, clientConfig.JobName, options.ProjectName, options.ProjectId)
	if err := query.Validate(); err != nil {
		return NewConfigError("project", err.Error())
	}

	registry := prom.NewRegistry()
	metrics := prometheus.NewMetrics(registry)
	defer pushMetrics(clientConfig, registry, query)

	httpClient := &http.Client{Timeout: clientConfig.RequestTimeout}
	provider := NewTokenProvider(clientConfig.TokenRequestUrl, clientConfig.TokenRequestToken, clientConfig.Audience, httpClient)
	watcher := NewWatcher(clientConfig.BaseUrl, clientConfig.Debug, httpClient)

	if watcher.debugMode {
		printClientConfiguration(os.Stdout, clientConfig, options, query)
	}

	credential, err := provider.Acquire(ctx)
	if err != nil {
		return err
	}

	log.Info().Msgf("Waiting up to %s for %s to be deployed from commit %s", options.TimeoutBudget(), query.Project(), sha)

	response, err := NewWaiter(provider, watcher, metrics).WaitUntilReady(ctx, credential, query, options.TimeoutBudget(), clientConfig.PollInterval)
	if err != nil {
		return err
	}

	log.Info().Msgf("Deployment is ready: %s", response.DeploymentURL)

	return writeOutputs(clientConfig.OutputPath, options.OutputName, response)
}

// RunRegisterCheck registers the current commit with the check service.
func RunRegisterCheck(ctx context.Context) error {
	clientConfig, err := NewClientConfig()
	if err != nil {
		return err
	}

	initLogs(clientConfig.LogLevel, clientConfig.LogFormat)

	sha, err := github.NewCommitResolver(github.GitClient{}).Resolve(clientConfig.EventPath, clientConfig.Sha, clientConfig.Workspace)
	if err != nil {
		return NewConfigError("GITHUB_SHA", err.Error())
	}

	httpClient := &http.Client{Timeout: clientConfig.RequestTimeout}

	credential, err := NewTokenProvider(clientConfig.TokenRequestUrl, clientConfig.TokenRequestToken, clientConfig.Audience, httpClient).Acquire(ctx)
	if err != nil {
		return err
	}

	if err := NewWatcher(clientConfig.BaseUrl, clientConfig.Debug, httpClient).RegisterCheck(ctx, credential, sha); err != nil {
		return err
	}

	log.Info().Msgf("Registered deployment check for commit %s", sha)

	return nil
}

func pushMetrics(clientConfig *ClientConfig, registry *prom.Registry, query models.StatusQuery) {
	if clientConfig.PushgatewayUrl == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	grouping := map[string]string{"project": query.Project(), "job_name": query.JobName}
	if err := prometheus.Push(ctx, clientConfig.PushgatewayUrl, metricsJobName, registry, grouping); err != nil {
		log.Warn().Msgf("Couldn't push metrics. Got the following error: %s", err)
	}
}
