package hud

import (
	"sync"
)

// Mock implements Presenter for testing. It records every hook invocation
// in order so tests can assert on presentation behavior.
type Mock struct {
	mu    sync.Mutex
	calls []MockCall

	// Captured arguments from the most interesting hooks.
	Reports  []Report
	Regions  [][]Region
	Scores   []int
	Alerts   []string
	Errors   []string
	Progress []StageProgress
}

// MockCall records a hook invocation by name.
type MockCall struct {
	Hook string
}

// StageProgress records one SetStageProgress invocation.
type StageProgress struct {
	Stage   int
	Percent int
}

// NewMock creates a new recording mock presenter.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) record(hook string) {
	m.calls = append(m.calls, MockCall{Hook: hook})
}

func (m *Mock) StartCameraHUD() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("StartCameraHUD")
}

func (m *Mock) StopCameraHUD() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("StopCameraHUD")
}

func (m *Mock) ResetHUD() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ResetHUD")
}

func (m *Mock) PreviewReady() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("PreviewReady")
}

func (m *Mock) StartScan() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("StartScan")
}

func (m *Mock) SetStageProgress(stage int, percent int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetStageProgress")
	m.Progress = append(m.Progress, StageProgress{Stage: stage, Percent: percent})
}

func (m *Mock) FinishScan(report Report) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("FinishScan")
	m.Reports = append(m.Reports, report)
}

func (m *Mock) DrawRegions(regions []Region) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DrawRegions")
	m.Regions = append(m.Regions, regions)
}

func (m *Mock) AnimateScore(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("AnimateScore")
	m.Scores = append(m.Scores, score)
}

func (m *Mock) Alert(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Alert")
	m.Alerts = append(m.Alerts, msg)
}

func (m *Mock) ScanError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ScanError")
	m.Errors = append(m.Errors, msg)
}

// Calls returns all recorded hook invocations in order.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a hook was invoked.
func (m *Mock) CallCount(hook string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Hook == hook {
			count++
		}
	}
	return count
}

// LastReport returns the most recent report, or nil if none.
func (m *Mock) LastReport() *Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Reports) == 0 {
		return nil
	}
	r := m.Reports[len(m.Reports)-1]
	return &r
}

// Reset clears all recorded calls and captures.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.Reports = nil
	m.Regions = nil
	m.Scores = nil
	m.Alerts = nil
	m.Errors = nil
	m.Progress = nil
}

// Verify Mock implements Presenter at compile time.
var _ Presenter = (*Mock)(nil)
