package client

//go:generate mockgen -destination=../../internal/mock/client_mock.go -package=mock github.com/shini4i/deploy-await/pkg/client CredentialSource,StatusPoller

import (
	"context"

	"github.com/shini4i/deploy-await/internal/models"
)

type CredentialSource interface {
	Acquire(ctx context.Context) (models.Credential, error)
}

type StatusPoller interface {
	Poll(ctx context.Context, credential models.Credential, query models.StatusQuery) models.Decision
}

var (
	_ CredentialSource = (*TokenProvider)(nil)
	_ StatusPoller     = (*Watcher)(nil)
)
