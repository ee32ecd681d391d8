// Package analyze provides scan analysis engines for the scan service.
//
// An Engine turns uploaded image bytes into the result shape the frontend
// renders. The deterministic Mock engine works offline; Azure combines
// Azure Vision features with an OpenAI-generated summary. Chain falls back
// across engines in order, so a service configured for Azure still answers
// when the upstream is down.
package analyze

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Analysis pipeline modes.
const (
	ModeCognitive = "cognitive"
	ModePhysical  = "physical"
)

// ValidMode reports whether mode names a known analysis pipeline.
func ValidMode(mode string) bool {
	return mode == ModeCognitive || mode == ModePhysical
}

// Sentinel errors.
var (
	// ErrNoEngines is returned by a chain with nothing to run.
	ErrNoEngines = errors.New("analyze: no engines configured")

	// ErrNotConfigured is returned when an engine is missing credentials.
	ErrNotConfigured = errors.New("analyze: engine not configured")
)

// Result is the response shape the scan frontend consumes.
type Result struct {
	Summary         string   `json:"summary"`
	HealthScore     int      `json:"healthScore"`
	CognitiveScore  int      `json:"cognitiveScore"`
	Confidence      float64  `json:"confidence"`
	Highlights      []string `json:"highlights"`
	Recommendations []string `json:"recommendations"`
	Regions         []Region `json:"regions"`
	Meta            Meta     `json:"meta"`
}

// Region is a detected-region descriptor in frame fractions.
type Region struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Note string  `json:"note,omitempty"`
}

// Meta records which pipeline and engine produced a result.
type Meta struct {
	Mode   string `json:"mode"`
	Engine string `json:"engine"`
}

// Engine analyzes one uploaded image.
type Engine interface {
	// Name identifies the engine in logs and metadata.
	Name() string

	// Analyze produces a result for the image under the given mode.
	Analyze(ctx context.Context, image []byte, mode string) (*Result, error)
}

// Chain runs engines in order and returns the first success.
type Chain struct {
	engines []Engine
	logger  *slog.Logger
}

// NewChain creates an engine chain. Later engines are fallbacks.
func NewChain(logger *slog.Logger, engines ...Engine) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{
		engines: engines,
		logger:  logger.With("component", "analyze.chain"),
	}
}

// Name identifies the chain by its engines.
func (c *Chain) Name() string {
	return "chain"
}

// Analyze tries each engine until one succeeds.
func (c *Chain) Analyze(ctx context.Context, image []byte, mode string) (*Result, error) {
	if len(c.engines) == 0 {
		return nil, ErrNoEngines
	}

	var lastErr error
	for _, e := range c.engines {
		result, err := e.Analyze(ctx, image, mode)
		if err == nil {
			return result, nil
		}
		lastErr = err
		c.logger.Warn("engine failed, trying next", "engine", e.Name(), "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("analyze: all %d engines failed, last error: %w",
		len(c.engines), lastErr)
}

var _ Engine = (*Chain)(nil)
