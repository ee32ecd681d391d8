package scan

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lifescan-ai/go-lifescan/internal/httpc"
	"github.com/lifescan-ai/go-lifescan/pkg/hud"
)

// DefaultEndpoint is the scan service path posted to when none is configured.
const DefaultEndpoint = "/scan"

// Config holds scan client configuration.
// Use functional options (WithXxx) to set these values.
type Config struct {
	// Endpoint is the scan service URL.
	Endpoint string

	// Mode selects the analysis pipeline ("cognitive" or "physical").
	// Empty sends no mode field and lets the service default.
	Mode string

	// Timeout bounds one scan request.
	Timeout time.Duration

	// HTTPClient overrides the shared client (mainly for tests).
	HTTPClient *http.Client

	// Presenter receives the presentation hooks.
	Presenter hud.Presenter

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Option is a functional option for configuring the scan client.
type Option func(*Config)

// WithEndpoint sets the scan service URL.
func WithEndpoint(url string) Option {
	return func(c *Config) {
		c.Endpoint = url
	}
}

// WithMode selects the analysis pipeline.
func WithMode(mode string) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithPresenter sets the presentation hooks. Defaults to hud.Nop.
func WithPresenter(p hud.Presenter) Option {
	return func(c *Config) {
		c.Presenter = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:  DefaultEndpoint,
		Timeout:   httpc.DefaultTimeout,
		Presenter: hud.Nop{},
		Logger:    slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return ErrNoEndpoint
	}
	return nil
}
