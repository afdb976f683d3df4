package models

import "time"

// Credential is a bearer token together with the moment it stops being accepted.
// Values are never modified after construction; a refresh yields a new one.
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

// ExpiresIn returns how long the credential remains valid relative to now.
func (credential Credential) ExpiresIn(now time.Time) time.Duration {
	return credential.ExpiresAt.Sub(now)
}

type IdTokenResponse struct {
	Value string `json:"value"`
}
