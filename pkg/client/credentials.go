package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/deploy-await/internal/models"
)

// refreshThreshold is the remaining validity at which a credential is replaced.
const refreshThreshold = 30 * time.Second

// TokenProvider obtains OIDC tokens from the CI identity broker.
type TokenProvider struct {
	requestUrl   string
	requestToken string
	audience     string
	client       *http.Client
}

func NewTokenProvider(requestUrl, requestToken, audience string, client *http.Client) *TokenProvider {
	return &TokenProvider{
		requestUrl:   requestUrl,
		requestToken: requestToken,
		audience:     audience,
		client:       client,
	}
}

// Acquire requests a fresh token for the configured audience.
// Missing broker settings yield a ConfigError before any request is sent.
func (provider *TokenProvider) Acquire(ctx context.Context) (models.Credential, error) {
	if provider.requestUrl == "" {
		return models.Credential{}, NewConfigError("ACTIONS_ID_TOKEN_REQUEST_URL", "is not set, make sure the job has the id-token: write permission")
	}
	if provider.requestToken == "" {
		return models.Credential{}, NewConfigError("ACTIONS_ID_TOKEN_REQUEST_TOKEN", "is not set, make sure the job has the id-token: write permission")
	}

	requestUrl, err := url.Parse(provider.requestUrl)
	if err != nil {
		return models.Credential{}, NewConfigError("ACTIONS_ID_TOKEN_REQUEST_URL", err.Error())
	}

	query := requestUrl.Query()
	query.Set("audience", provider.audience)
	requestUrl.RawQuery = query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl.String(), nil)
	if err != nil {
		return models.Credential{}, NewAuthError("could not build identity broker request", err)
	}

	request.Header.Set("Authorization", "Bearer "+provider.requestToken)
	request.Header.Set("Accept", "application/json")

	response, err := provider.client.Do(request)
	if err != nil {
		return models.Credential{}, NewAuthError("identity broker request failed", err)
	}

	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Warn().Msgf("failed to close response body: %v", err)
		}
	}(response.Body)

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return models.Credential{}, NewAuthError("could not read identity broker response", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return models.Credential{}, NewAuthError(
			fmt.Sprintf("identity broker responded with %d %s: %s", response.StatusCode, http.StatusText(response.StatusCode), body),
			nil,
		)
	}

	var payload models.IdTokenResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.Credential{}, NewAuthError("could not parse identity broker response", err)
	}

	if payload.Value == "" {
		return models.Credential{}, NewAuthError("identity broker response does not contain a token", nil)
	}

	expiresAt, err := decodeExpiry(payload.Value)
	if err != nil {
		return models.Credential{}, err
	}

	log.Debug().Msgf("Acquired OIDC token for audience %s, valid until %s", provider.audience, expiresAt.Format(time.RFC3339))

	return models.Credential{Token: payload.Value, ExpiresAt: expiresAt}, nil
}

// decodeExpiry reads the exp claim without verifying the signature;
// the token comes straight from the broker and is only forwarded.
func decodeExpiry(token string) (time.Time, error) {
	if segments := strings.Count(token, ".") + 1; segments != 3 {
		return time.Time{}, NewDecodeError(fmt.Sprintf("expected 3 token segments, got %d", segments), nil)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, NewDecodeError("malformed token", err)
	}

	expiration, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, NewDecodeError("exp claim is not numeric", err)
	}
	if expiration == nil {
		return time.Time{}, NewDecodeError("missing exp claim", nil)
	}

	return expiration.Time, nil
}

// NeedsRefresh reports whether the credential has 30 seconds or less left.
func NeedsRefresh(credential models.Credential, now time.Time) bool {
	return credential.ExpiresIn(now) <= refreshThreshold
}
