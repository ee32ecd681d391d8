// Package capture owns the camera session and the current image payload
// for a scan client.
//
// A Controller holds at most one live camera session and one payload at a
// time. Payloads come from captured frames or externally selected files;
// either supersedes the previous payload. Presentation hooks fire through a
// hud.Presenter so callers can mirror session state on a display.
//
// Example usage:
//
//	ctrl := capture.New(capture.NewWebcam(),
//	    capture.WithPresenter(hud.NewTerminal()),
//	)
//	defer ctrl.Clear()
//
//	ctrl.OpenCamera()                  // preview live
//	payload, _ := ctrl.EnsurePayload() // captures a frame on demand
package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lifescan-ai/go-lifescan/pkg/hud"
)

// State is the capture lifecycle state.
type State int

const (
	// StateIdle means no session and no payload.
	StateIdle State = iota
	// StatePreviewLive means a camera session is open with nothing captured.
	StatePreviewLive
	// StatePreviewCaptured means a payload exists. The camera session may
	// or may not still be live.
	StatePreviewCaptured
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePreviewLive:
		return "preview-live"
	case StatePreviewCaptured:
		return "preview-captured"
	default:
		return "idle"
	}
}

// Source identifies where a payload came from.
type Source string

const (
	// SourceCamera marks frames captured from a live session.
	SourceCamera Source = "camera"
	// SourceFile marks externally selected files.
	SourceFile Source = "file"
)

// Payload is one opaque JPEG image owned by the controller until handed off.
type Payload struct {
	// Data is the encoded image.
	Data []byte

	// CapturedAt is when the payload was produced or selected.
	CapturedAt time.Time

	// Source is camera or file.
	Source Source

	// Filename is the original name for file payloads, synthetic for frames.
	Filename string
}

// Controller is the capture component. It is safe for concurrent use,
// though the expected pattern is one controller per client session.
type Controller struct {
	mu      sync.Mutex
	dev     Device
	live    bool
	payload *Payload

	cfg       Config
	presenter hud.Presenter
	logger    *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfig sets the capture device configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithPresenter sets the presentation hooks. Defaults to hud.Nop.
func WithPresenter(p hud.Presenter) Option {
	return func(c *Controller) {
		c.presenter = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a capture controller around a device.
// A nil device means the platform exposes no camera; OpenCamera then fails
// with ErrDeviceUnavailable while file selection keeps working.
func New(dev Device, opts ...Option) *Controller {
	c := &Controller{
		dev:       dev,
		cfg:       DefaultConfig(),
		presenter: hud.Nop{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "capture")
	return c
}

// OpenCamera opens a camera session, or closes the active one.
//
// The toggle mirrors a single open/close control: calling while a session
// is live closes it and returns (false, nil); calling while idle acquires
// the device and returns (true, nil). Acquisition failures surface as a
// user-facing alert and an error from the taxonomy.
func (c *Controller) OpenCamera() (opened bool, err error) {
	c.mu.Lock()
	if c.live {
		c.closeLocked()
		c.mu.Unlock()
		c.presenter.StopCameraHUD()
		return false, nil
	}

	if c.dev == nil {
		c.mu.Unlock()
		c.presenter.Alert("Camera not supported on this device.")
		return false, ErrDeviceUnavailable
	}

	if err := c.dev.Open(c.cfg); err != nil {
		c.mu.Unlock()
		c.logger.Error("camera acquisition failed", "error", err)
		if errors.Is(err, ErrPermissionDenied) {
			c.presenter.Alert("Camera access denied.")
		} else {
			c.presenter.Alert("Unable to start camera.")
		}
		return false, err
	}

	c.live = true
	c.mu.Unlock()

	c.logger.Info("camera session opened", "device", c.cfg.DeviceID)
	c.presenter.StartCameraHUD()
	return true, nil
}

// CloseCamera stops the active session and clears the handle.
// No-op when no session is active.
func (c *Controller) CloseCamera() {
	c.mu.Lock()
	wasLive := c.live
	c.closeLocked()
	c.mu.Unlock()

	if wasLive {
		c.presenter.StopCameraHUD()
	}
}

// closeLocked releases the device. Caller holds c.mu.
func (c *Controller) closeLocked() {
	if !c.live {
		return
	}
	if err := c.dev.Close(); err != nil {
		c.logger.Warn("camera close failed", "error", err)
	}
	c.live = false
	c.logger.Info("camera session closed")
}

// CaptureFrame captures the current video frame as a JPEG payload.
// The new payload supersedes any previous one. Fails with
// ErrNoActiveSession when no camera session is open; callers surface that
// as a prompt, not a crash.
func (c *Controller) CaptureFrame() (*Payload, error) {
	c.mu.Lock()
	if !c.live {
		c.mu.Unlock()
		return nil, ErrNoActiveSession
	}

	data, err := c.dev.Frame()
	if err != nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("capture frame: %w", err)
	}

	now := time.Now()
	p := &Payload{
		Data:       data,
		CapturedAt: now,
		Source:     SourceCamera,
		Filename:   fmt.Sprintf("capture-%d.jpg", now.UnixMilli()),
	}
	c.payload = p
	c.mu.Unlock()

	w, h := c.dev.Resolution()
	if w == 0 || h == 0 {
		w, h = FallbackWidth, FallbackHeight
	}
	c.logger.Debug("frame captured", "bytes", len(data), "width", w, "height", h)
	c.presenter.PreviewReady()
	return p, nil
}

// SelectFile adopts an externally chosen file as the payload directly,
// superseding any previous capture. No decoding or validation happens at
// this layer, and the camera session is left untouched.
func (c *Controller) SelectFile(filename string, data []byte) *Payload {
	p := &Payload{
		Data:       data,
		CapturedAt: time.Now(),
		Source:     SourceFile,
		Filename:   filename,
	}

	c.mu.Lock()
	c.payload = p
	c.mu.Unlock()

	c.logger.Info("file selected", "name", filename, "bytes", len(data))
	c.presenter.PreviewReady()
	return p
}

// Clear discards the current payload and closes any camera session,
// returning the controller to idle.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.payload = nil
	wasLive := c.live
	c.closeLocked()
	c.mu.Unlock()

	if wasLive {
		c.presenter.StopCameraHUD()
	}
	c.presenter.ResetHUD()
}

// Payload returns the current payload without side effects, nil when none.
func (c *Controller) Payload() *Payload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.payload
}

// EnsurePayload returns the current payload, capturing a fresh frame first
// when a session is live and nothing has been captured yet. This keeps
// "scan" working on fresh data while a live camera is open. Fails with
// ErrNoPayload when there is nothing to return.
func (c *Controller) EnsurePayload() (*Payload, error) {
	c.mu.Lock()
	p := c.payload
	live := c.live
	c.mu.Unlock()

	if p != nil {
		return p, nil
	}
	if live {
		return c.CaptureFrame()
	}
	return nil, ErrNoPayload
}

// Live reports whether a camera session is active.
func (c *Controller) Live() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.live
}

// State returns the capture lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.payload != nil:
		return StatePreviewCaptured
	case c.live:
		return StatePreviewLive
	default:
		return StateIdle
	}
}
