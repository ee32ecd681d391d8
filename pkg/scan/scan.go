// Package scan posts captured images to the scan service and renders the
// response for presentation.
//
// A Client owns one end-to-end scan at a time: it pulls the current payload
// from the capture component, builds the multipart request, reports staged
// cosmetic progress through the presenter, and hands the rendered report
// back via the FinishScan/DrawRegions/AnimateScore hooks. Failures never
// propagate past RunScan's boundary as panics; every path returns the
// caller to a retryable state.
//
// Example usage:
//
//	client := scan.NewClient(ctrl,
//	    scan.WithEndpoint("http://localhost:8000/scan"),
//	    scan.WithPresenter(hud.NewTerminal()),
//	)
//	report, err := client.RunScan(ctx)
package scan

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lifescan-ai/go-lifescan/internal/httpc"
	"github.com/lifescan-ai/go-lifescan/pkg/capture"
	"github.com/lifescan-ai/go-lifescan/pkg/hud"
)

// imageField is the multipart field name the scan service expects.
const imageField = "image"

// Stage identifiers for cosmetic progress reporting.
const (
	StageUpload     = 1
	StageProcessing = 2
	StageRendering  = 3
)

// Client is the transport component: it exchanges one image payload for a
// scan result and forwards the rendered outcome to the presenter.
type Client struct {
	cap      *capture.Controller
	cfg      *Config
	http     *http.Client
	inFlight atomic.Bool
}

// NewClient creates a scan client around a capture controller.
func NewClient(cap *capture.Controller, opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = httpc.NewClient(cfg.Timeout)
	}

	return &Client{
		cap:  cap,
		cfg:  cfg,
		http: client,
	}, nil
}

// RunScan orchestrates one end-to-end scan.
//
// It obtains the payload (capturing a fresh frame when a live session has
// nothing captured yet), posts it as multipart/form-data, and renders the
// parsed result. A scan with no obtainable image reports a user-visible
// alert and returns ErrNoImage. Non-2xx responses return an *APIError with
// the body surfaced verbatim; transport and parse failures are reported as
// "Scan failed: <message>" through the presenter. No retry is attempted.
// Submissions are serialized: a second call while one is outstanding
// returns ErrScanInFlight.
func (c *Client) RunScan(ctx context.Context) (*hud.Report, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrScanInFlight
	}
	defer c.inFlight.Store(false)

	p := c.cfg.Presenter

	payload, err := c.cap.EnsurePayload()
	if err != nil {
		if errors.Is(err, capture.ErrNoPayload) {
			p.Alert("No image to scan. Open the camera or choose a file first.")
			return nil, ErrNoImage
		}
		p.ScanError(scanFailed(err.Error()))
		return nil, err
	}

	p.StartScan()
	p.SetStageProgress(StageUpload, 15)

	start := time.Now()
	resp, err := c.post(ctx, payload)
	if err != nil {
		c.cfg.Logger.Error("scan request failed", "error", err)
		p.ScanError(scanFailed(err.Error()))
		return nil, fmt.Errorf("scan: request: %w", err)
	}
	defer resp.Body.Close()

	p.SetStageProgress(StageProcessing, 55)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.cfg.Logger.Error("scan response read failed", "error", err)
		p.ScanError(scanFailed(err.Error()))
		return nil, fmt.Errorf("scan: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
		c.cfg.Logger.Warn("scan rejected", "status", resp.StatusCode, "body", apiErr.Body)
		p.ScanError(scanFailed(apiErr.Message()))
		return nil, apiErr
	}

	result, err := ParseResult(body)
	if err != nil {
		c.cfg.Logger.Error("scan response parse failed", "error", err)
		p.ScanError(scanFailed(err.Error()))
		return nil, err
	}

	p.SetStageProgress(StageRendering, 85)

	report := Render(result)
	c.cfg.Logger.Info("scan completed",
		"engine", result.Engine,
		"regions", len(report.Regions),
		"latency_ms", time.Since(start).Milliseconds(),
	)

	p.FinishScan(report)
	if len(report.Regions) > 0 {
		p.DrawRegions(report.Regions)
	}
	if report.HealthScore != nil {
		p.AnimateScore(*report.HealthScore)
	}

	return &report, nil
}

// post issues the multipart upload for one payload.
func (c *Client) post(ctx context.Context, payload *capture.Payload) (*http.Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	filename := payload.Filename
	if filename == "" {
		filename = "scan.jpg"
	}
	part, err := mw.CreateFormFile(imageField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(payload.Data); err != nil {
		return nil, err
	}
	if c.cfg.Mode != "" {
		if err := mw.WriteField("mode", c.cfg.Mode); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.http.Do(req)
}

// scanFailed formats the user-facing placeholder text for a failed scan.
func scanFailed(msg string) string {
	return "Scan failed: " + msg
}
