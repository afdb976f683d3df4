package client

import (
	"time"

	envConfig "github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	LogFormatText = "text"

	DefaultTimeoutSeconds = 600
)

// ClientConfig holds everything read from the CI job environment.
type ClientConfig struct {
	BaseUrl           string        `env:"DEPLOY_AWAIT_BASE_URL" envDefault:"https://deploy-await.dev" validate:"required,url"`
	Sha               string        `env:"GITHUB_SHA"`
	JobName           string        `env:"GITHUB_JOB" validate:"required"`
	EventPath         string        `env:"GITHUB_EVENT_PATH"`
	Workspace         string        `env:"GITHUB_WORKSPACE"`
	OutputPath        string        `env:"GITHUB_OUTPUT"`
	TokenRequestUrl   string        `env:"ACTIONS_ID_TOKEN_REQUEST_URL"`
	TokenRequestToken string        `env:"ACTIONS_ID_TOKEN_REQUEST_TOKEN"`
	Audience          string        `env:"OIDC_AUDIENCE" envDefault:"deploy-await" validate:"required"`
	PollInterval      time.Duration `env:"POLL_INTERVAL" envDefault:"5s" validate:"gt=0"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	PushgatewayUrl    string        `env:"PUSHGATEWAY_URL" validate:"omitempty,url"`
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat         string        `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	Debug             bool          `env:"DEBUG"`
}

// AwaitOptions are the step inputs passed on the command line.
type AwaitOptions struct {
	ProjectName string `validate:"required_without=ProjectId"`
	ProjectId   string `validate:"required_without=ProjectName"`
	OutputName  string `validate:"required"`
	Timeout     int    `validate:"gt=0"`
}

// NewClientConfig parses the client configuration from environment variables and validates it.
// Validation failures are reported as ConfigError.
func NewClientConfig() (*ClientConfig, error) {
	var config ClientConfig

	if err := envConfig.Parse(&config); err != nil {
		return nil, NewConfigError("", err.Error())
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, NewConfigError("", err.Error())
	}

	return &config, nil
}

// Validate checks the step inputs.
func (options *AwaitOptions) Validate() error {
	if err := validator.New().Struct(options); err != nil {
		return NewConfigError("", err.Error())
	}
	return nil
}

// TimeoutBudget converts the timeout input to a duration.
func (options *AwaitOptions) TimeoutBudget() time.Duration {
	return time.Duration(options.Timeout) * time.Second
}
