package hud

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Terminal is a Presenter that renders scan progress and reports to a
// terminal. It is the default presenter for the CLI client.
type Terminal struct {
	mu  sync.Mutex
	out io.Writer
}

// NewTerminal creates a terminal presenter writing to stdout.
func NewTerminal() *Terminal {
	return &Terminal{out: os.Stdout}
}

// NewTerminalWriter creates a terminal presenter writing to w.
func NewTerminalWriter(w io.Writer) *Terminal {
	return &Terminal{out: w}
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *Terminal) StartCameraHUD() {
	t.printf("📷 Camera preview live\n")
}

func (t *Terminal) StopCameraHUD() {
	t.printf("📷 Camera closed\n")
}

func (t *Terminal) ResetHUD() {
	t.printf("🧹 Cleared\n")
}

func (t *Terminal) PreviewReady() {
	t.printf("🖼️  Preview ready\n")
}

func (t *Terminal) StartScan() {
	t.printf("🔬 Scanning...\n")
}

func (t *Terminal) SetStageProgress(stage int, percent int) {
	names := map[int]string{1: "upload", 2: "processing", 3: "rendering"}
	name := names[stage]
	if name == "" {
		name = fmt.Sprintf("stage %d", stage)
	}
	t.printf("   %-10s %3d%%\n", name, percent)
}

func (t *Terminal) FinishScan(report Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.out, "╭───────────────────────────────────────────")
	fmt.Fprintf(t.out, "│ %s\n", report.Summary)
	fmt.Fprintf(t.out, "│ Confidence: %d%%\n", report.ConfidencePct)
	if report.HealthScore != nil {
		fmt.Fprintf(t.out, "│ Health score: %d\n", *report.HealthScore)
	}
	if report.CognitiveScore != nil {
		fmt.Fprintf(t.out, "│ Cognitive score: %d\n", *report.CognitiveScore)
	}
	for _, h := range report.Highlights {
		fmt.Fprintf(t.out, "│  • %s\n", h)
	}
	for _, r := range report.Recommendations {
		fmt.Fprintf(t.out, "│  → %s\n", r)
	}
	if report.RegionNote != "" {
		fmt.Fprintf(t.out, "│ %s\n", report.RegionNote)
	}
	fmt.Fprintln(t.out, "╰───────────────────────────────────────────")
}

func (t *Terminal) DrawRegions(regions []Region) {
	for _, r := range regions {
		label := r.Note
		if label == "" {
			label = r.Object
		}
		t.printf("   ▢ region x=%.2f y=%.2f w=%.2f h=%.2f %s\n", r.X, r.Y, r.W, r.H, label)
	}
}

func (t *Terminal) AnimateScore(score int) {
	t.printf("💯 Score: %d\n", score)
}

func (t *Terminal) Alert(msg string) {
	t.printf("⚠️  %s\n", msg)
}

func (t *Terminal) ScanError(msg string) {
	t.printf("❌ %s\n", msg)
}

var _ Presenter = (*Terminal)(nil)
