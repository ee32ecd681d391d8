// Package hud defines the presentation capability interface for scan clients.
//
// The capture and scan components never talk to a screen directly; they emit
// named hook calls (camera HUD on/off, staged scan progress, finished reports,
// region overlays) through a Presenter. Implementations include a terminal
// presenter, a websocket forwarder for browser HUDs, and a recording mock for
// tests. Callers that want no presentation at all use Nop.
package hud

// Report is the rendered, display-ready form of a scan result.
// All fields are resolved: optional upstream values have already been
// defaulted, so presenters can show them without further checks.
type Report struct {
	// Summary is the headline text, never empty.
	Summary string

	// ConfidencePct is the confidence badge value in whole percent.
	ConfidencePct int

	// HealthScore and CognitiveScore are nil when the scan produced none.
	HealthScore    *int
	CognitiveScore *int

	// Highlights and Recommendations are ordered lists, empty when absent.
	Highlights      []string
	Recommendations []string

	// RegionNote is the regions count note, empty when there are no regions.
	RegionNote string

	// Regions are the detected-region descriptors in upstream order.
	Regions []Region
}

// Region is a detected-region descriptor for preview overlays.
// Coordinates are fractions of the frame when provided by the service;
// any field may be zero-valued for descriptors of other shapes.
type Region struct {
	X      float64
	Y      float64
	W      float64
	H      float64
	Note   string
	Object string
}

// Presenter is the set of presentation callback slots.
// Every hook is advisory: implementations must not block the caller and
// must never fail. Implement the full interface or embed Nop for defaults.
type Presenter interface {
	// StartCameraHUD signals that a live camera preview opened.
	StartCameraHUD()

	// StopCameraHUD signals that the camera preview closed.
	StopCameraHUD()

	// ResetHUD clears all scan state from the display.
	ResetHUD()

	// PreviewReady signals that a new payload is available for preview.
	PreviewReady()

	// StartScan signals that a scan request is about to start.
	StartScan()

	// SetStageProgress reports cosmetic progress for a named stage.
	// Stages are 1 (upload), 2 (processing), 3 (rendering); percentages
	// increase monotonically within one scan.
	SetStageProgress(stage int, percent int)

	// FinishScan delivers the rendered report.
	FinishScan(report Report)

	// DrawRegions requests region overlays on the preview.
	DrawRegions(regions []Region)

	// AnimateScore animates the health score display.
	AnimateScore(score int)

	// Alert shows a blocking, user-facing message (camera failures,
	// scan attempted with nothing to send).
	Alert(msg string)

	// ScanError replaces the results placeholder with a failure message.
	ScanError(msg string)
}

// Nop is a Presenter whose hooks all do nothing.
// Embed it to implement only the hooks a presenter cares about.
type Nop struct{}

func (Nop) StartCameraHUD()             {}
func (Nop) StopCameraHUD()              {}
func (Nop) ResetHUD()                   {}
func (Nop) PreviewReady()               {}
func (Nop) StartScan()                  {}
func (Nop) SetStageProgress(int, int)   {}
func (Nop) FinishScan(Report)           {}
func (Nop) DrawRegions([]Region)        {}
func (Nop) AnimateScore(int)            {}
func (Nop) Alert(string)                {}
func (Nop) ScanError(string)            {}

// Verify Nop implements Presenter at compile time.
var _ Presenter = Nop{}
