package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lifescan-ai/go-lifescan/internal/httpc"
)

const (
	visionAnalyzePath = "/vision/v3.2/analyze"
	openAIChatURL     = "https://api.openai.com/v1/chat/completions"
	openAIModel       = "gpt-4o-mini"
)

// fallbackSummary is used when no OpenAI key is configured.
const fallbackSummary = "No critical concerns detected.\n\n" +
	"Recommendations:\n" +
	"- Retake scan in good lighting\n" +
	"- Consult a clinician if symptoms persist"

// AzureConfig holds credentials and overrides for the Azure engine.
type AzureConfig struct {
	// VisionEndpoint and VisionKey configure Azure Computer Vision.
	// Both are required.
	VisionEndpoint string
	VisionKey      string

	// OpenAIKey enables summary generation. Empty falls back to a
	// fixed safe summary.
	OpenAIKey string

	// OpenAIBaseURL overrides the chat completions URL (for tests).
	OpenAIBaseURL string

	// HTTPClient overrides the shared client (for tests).
	HTTPClient *http.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// Azure analyzes images with Azure Computer Vision and summarizes the
// extracted features with OpenAI.
type Azure struct {
	cfg    AzureConfig
	http   *http.Client
	logger *slog.Logger
}

// NewAzure creates the Azure engine.
// Fails with ErrNotConfigured when vision credentials are missing.
func NewAzure(cfg AzureConfig) (*Azure, error) {
	if cfg.VisionEndpoint == "" || cfg.VisionKey == "" {
		return nil, fmt.Errorf("%w: vision endpoint and key required", ErrNotConfigured)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = httpc.Client
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Azure{
		cfg:    cfg,
		http:   client,
		logger: logger.With("component", "analyze.azure"),
	}, nil
}

// Name identifies the engine.
func (a *Azure) Name() string {
	return "azure+openai"
}

// visionResponse carries the Azure Vision fields this engine consumes.
type visionResponse struct {
	Description struct {
		Captions []struct {
			Text string `json:"text"`
		} `json:"captions"`
	} `json:"description"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

// Analyze extracts vision features, asks OpenAI for a short health summary,
// and shapes both into the frontend result.
func (a *Azure) Analyze(ctx context.Context, img []byte, mode string) (*Result, error) {
	features, err := a.analyzeVision(ctx, img)
	if err != nil {
		return nil, err
	}

	caption := ""
	if len(features.Description.Captions) > 0 {
		caption = features.Description.Captions[0].Text
	}

	tags := make([]string, 0, 6)
	for _, t := range features.Tags {
		tags = append(tags, t.Name)
		if len(tags) == 6 {
			break
		}
	}

	prompt := fmt.Sprintf("Description: %s\nTags: %s\nProvide a brief health summary.",
		caption, strings.Join(tags, ", "))

	summary, err := a.summarize(ctx, prompt)
	if err != nil {
		return nil, err
	}

	highlights := tags
	if len(highlights) > 5 {
		highlights = highlights[:5]
	}

	return &Result{
		Summary:        summary,
		HealthScore:    75,
		CognitiveScore: 73,
		Confidence:     0.78,
		Highlights:     highlights,
		Recommendations: []string{
			"Improve lighting and rescan",
			"Seek medical advice if concerned",
		},
		Regions: []Region{},
		Meta:    Meta{Mode: mode, Engine: "azure+openai"},
	}, nil
}

// analyzeVision posts the raw image to the Azure Vision analyze endpoint.
func (a *Azure) analyzeVision(ctx context.Context, img []byte) (*visionResponse, error) {
	url := strings.TrimRight(a.cfg.VisionEndpoint, "/") + visionAnalyzePath +
		"?visualFeatures=Description,Tags,Faces,Objects"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("analyze: vision request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.cfg.VisionKey)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyze: vision request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("analyze: vision status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var features visionResponse
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return nil, fmt.Errorf("analyze: vision response: %w", err)
	}
	return &features, nil
}

// summarize generates a short summary for the extracted features.
// Without an OpenAI key it returns a fixed safe summary.
func (a *Azure) summarize(ctx context.Context, prompt string) (string, error) {
	if a.cfg.OpenAIKey == "" {
		return fallbackSummary, nil
	}

	payload := map[string]any{
		"model": openAIModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You summarize health image analysis safely and briefly."},
			{"role": "user", "content": prompt},
		},
		"temperature": 0.2,
		"max_tokens":  200,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("analyze: summary payload: %w", err)
	}

	url := a.cfg.OpenAIBaseURL
	if url == "" {
		url = openAIChatURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("analyze: summary request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.cfg.OpenAIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("analyze: summary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("analyze: summary status %d: %s",
			resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("analyze: summary response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("analyze: summary response had no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

var _ Engine = (*Azure)(nil)
