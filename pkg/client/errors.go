package client

import (
	"errors"
	"fmt"
	"time"

	"github.com/shini4i/deploy-await/internal/models"
)

// ConfigError indicates that a required input or environment variable is missing
// or invalid. No network call is made once it is detected.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// AuthError indicates the identity broker refused to issue a usable token.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("authentication error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("authentication error: %s", e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

func NewAuthError(message string, cause error) *AuthError {
	return &AuthError{Message: message, Cause: cause}
}

func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// DecodeError indicates the issued token could not be parsed for its expiry.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("token decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("token decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

func NewDecodeError(message string, cause error) *DecodeError {
	return &DecodeError{Message: message, Cause: cause}
}

func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// ServiceFatalError is returned when the status service rejects the request,
// fails on its side, or reports a deployment that can no longer become ready.
// StatusCode is zero when the HTTP exchange itself succeeded.
type ServiceFatalError struct {
	StatusCode int
	Status     models.DeploymentStatus
	Message    string
}

func (e *ServiceFatalError) Error() string {
	return e.Message
}

func NewServiceFatalError(statusCode int, message string) *ServiceFatalError {
	return &ServiceFatalError{StatusCode: statusCode, Message: message}
}

func NewDeploymentFailedError(status models.DeploymentStatus, message string) *ServiceFatalError {
	return &ServiceFatalError{Status: status, Message: message}
}

func IsServiceFatalError(err error) bool {
	var serviceErr *ServiceFatalError
	return errors.As(err, &serviceErr)
}

// TransientError carries the reason of a Continue decision between retries.
// It never leaves the wait loop.
type TransientError struct {
	Reason string
}

func (e *TransientError) Error() string {
	return e.Reason
}

func NewTransientError(reason string) *TransientError {
	return &TransientError{Reason: reason}
}

func IsTransientError(err error) bool {
	var transientErr *TransientError
	return errors.As(err, &transientErr)
}

// TimeoutError is returned once the wait budget is exhausted without a terminal decision.
type TimeoutError struct {
	Timeout    time.Duration
	Polls      int
	LastReason string
}

func (e *TimeoutError) Error() string {
	if e.LastReason != "" {
		return fmt.Sprintf("timed out after %s waiting for the deployment (%d polls, last result: %s)", e.Timeout, e.Polls, e.LastReason)
	}
	return fmt.Sprintf("timed out after %s waiting for the deployment (%d polls)", e.Timeout, e.Polls)
}

func NewTimeoutError(timeout time.Duration, polls int, lastReason string) *TimeoutError {
	return &TimeoutError{Timeout: timeout, Polls: polls, LastReason: lastReason}
}

func IsTimeoutError(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}
