package client

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/deploy-await/internal/models"
	"github.com/shini4i/deploy-await/internal/prometheus"
)

type WaitState string

const (
	StatePolling    WaitState = "polling"
	StateRefreshing WaitState = "refreshing"
	StateSucceeded  WaitState = "succeeded"
	StateFailed     WaitState = "failed"
	StateTimedOut   WaitState = "timed out"
)

// Waiter repeatedly polls the status service until the deployment settles,
// keeping the credential fresh in between.
type Waiter struct {
	credentials CredentialSource
	poller      StatusPoller
	metrics     prometheus.MetricsInterface
	now         func() time.Time
}

func NewWaiter(credentials CredentialSource, poller StatusPoller, metrics prometheus.MetricsInterface) *Waiter {
	return &Waiter{
		credentials: credentials,
		poller:      poller,
		metrics:     metrics,
		now:         time.Now,
	}
}

// waitRun is the state of a single WaitUntilReady invocation.
type waitRun struct {
	state      WaitState
	start      time.Time
	polls      int
	lastReason string
	terminal   error
}

func (run *waitRun) transition(state WaitState) {
	log.Debug().Msgf("Wait state changed: %s -> %s", run.state, state)
	run.state = state
}

// WaitUntilReady polls until the deployment is ready, fails, or the timeout elapses.
// The timeout is only checked before each poll, so an in-flight request may
// push the total wait slightly past it. Acquisition failures are not retried.
func (waiter *Waiter) WaitUntilReady(ctx context.Context, credential models.Credential, query models.StatusQuery, timeout, pollInterval time.Duration) (*models.StatusResponse, error) {
	run := &waitRun{state: StatePolling, start: waiter.now()}
	current := credential

	response, err := retry.DoWithData(
		func() (*models.StatusResponse, error) {
			if elapsed := waiter.now().Sub(run.start); elapsed > timeout {
				run.transition(StateTimedOut)
				return nil, run.abort(NewTimeoutError(timeout, run.polls, run.lastReason))
			}

			refreshed, err := waiter.ensureFresh(ctx, run, current)
			if err != nil {
				run.transition(StateFailed)
				return nil, run.abort(err)
			}
			current = refreshed

			decision := waiter.poller.Poll(ctx, current, query)
			run.polls++
			waiter.metrics.AddPoll(decision.Kind.String())

			switch decision.Kind {
			case models.DecisionSuccess:
				run.transition(StateSucceeded)
				return decision.Response, nil
			case models.DecisionFatal:
				run.transition(StateFailed)
				return nil, run.abort(decision.Err)
			default:
				run.lastReason = decision.Reason
				return nil, NewTransientError(decision.Reason)
			}
		},
		retry.Context(ctx),
		retry.Attempts(0),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(pollInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Info().Msgf("Deployment is not ready yet (%s), retrying in %s", err, pollInterval)
		}),
	)

	waiter.metrics.ObserveWait(outcome(run.state), waiter.now().Sub(run.start))

	if run.terminal != nil {
		return nil, run.terminal
	}
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("Deployment %s is ready after %d polls", response.DeploymentId, run.polls)

	return response, nil
}

// ensureFresh returns the credential to poll with, acquiring a new one
// when the current one is about to expire.
func (waiter *Waiter) ensureFresh(ctx context.Context, run *waitRun, current models.Credential) (models.Credential, error) {
	if !NeedsRefresh(current, waiter.now()) {
		return current, nil
	}

	run.transition(StateRefreshing)
	log.Info().Msg("OIDC token is about to expire, requesting a new one")

	refreshed, err := waiter.credentials.Acquire(ctx)
	if err != nil {
		return models.Credential{}, err
	}

	waiter.metrics.AddCredentialRefresh()
	run.transition(StatePolling)

	return refreshed, nil
}

func (run *waitRun) abort(err error) error {
	run.terminal = err
	return retry.Unrecoverable(err)
}

func outcome(state WaitState) string {
	switch state {
	case StateSucceeded:
		return prometheus.OutcomeSucceeded
	case StateTimedOut:
		return prometheus.OutcomeTimedOut
	default:
		return prometheus.OutcomeFailed
	}
}
