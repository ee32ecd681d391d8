package capture

import "sync"

// MockDevice implements Device for testing.
// It serves a fixed JPEG buffer and counts reads so tests can assert on
// capture behavior without camera hardware.
type MockDevice struct {
	// FrameData is returned by Frame. Defaults to a small stub buffer.
	FrameData []byte

	// OpenErr, FrameErr force failures when set.
	OpenErr  error
	FrameErr error

	// Width and Height are reported by Resolution.
	Width  int
	Height int

	mu         sync.Mutex
	open       bool
	openCount  int
	frameCount int
	closeCount int
}

// NewMockDevice creates a mock device serving a stub frame.
func NewMockDevice() *MockDevice {
	return &MockDevice{
		FrameData: []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x00, 0xFF, 0xD9},
		Width:     FallbackWidth,
		Height:    FallbackHeight,
	}
}

func (d *MockDevice) Open(cfg Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.OpenErr != nil {
		return d.OpenErr
	}
	d.open = true
	d.openCount++
	return nil
}

func (d *MockDevice) Frame() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return nil, ErrNoActiveSession
	}
	if d.FrameErr != nil {
		return nil, d.FrameErr
	}
	d.frameCount++
	data := make([]byte, len(d.FrameData))
	copy(data, d.FrameData)
	return data, nil
}

func (d *MockDevice) Resolution() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return 0, 0
	}
	return d.Width, d.Height
}

func (d *MockDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.open {
		d.open = false
		d.closeCount++
	}
	return nil
}

// IsOpen reports whether the device is currently acquired.
func (d *MockDevice) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// OpenCount returns how many times the device was acquired.
func (d *MockDevice) OpenCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openCount
}

// FrameCount returns how many frames were read.
func (d *MockDevice) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameCount
}

// CloseCount returns how many times the device was released.
func (d *MockDevice) CloseCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closeCount
}

var _ Device = (*MockDevice)(nil)
