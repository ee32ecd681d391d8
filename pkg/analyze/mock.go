package analyze

import (
	"bytes"
	"context"
	"image"

	// Register the formats uploads arrive in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Mock is a deterministic analysis engine. Scores derive from the image
// dimensions so repeated scans of the same image agree, which keeps demos
// and tests stable without any external service.
type Mock struct{}

// NewMock creates the deterministic engine.
func NewMock() *Mock {
	return &Mock{}
}

// Name identifies the engine.
func (m *Mock) Name() string {
	return "mock"
}

// Analyze produces a fixed-shape result seeded by the image dimensions.
// Undecodable images fall back to 1280x720.
func (m *Mock) Analyze(ctx context.Context, img []byte, mode string) (*Result, error) {
	width, height := 1280, 720
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(img)); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	return &Result{
		Summary:        "No immediate health risks detected.",
		HealthScore:    80 + (width % 7),
		CognitiveScore: 72 + (height % 5),
		Confidence:     0.87,
		Highlights:     []string{"balanced skin tone", "stable facial symmetry"},
		Recommendations: []string{
			"Ensure proper lighting during scan",
			"Maintain hydration and adequate rest",
		},
		Regions: []Region{
			{X: 0.3, Y: 0.2, W: 0.15, H: 0.15, Note: "eye region"},
		},
		Meta: Meta{Mode: mode, Engine: "mock"},
	}, nil
}

var _ Engine = (*Mock)(nil)
