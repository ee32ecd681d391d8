package capture

// Device is a frame source backing a camera session.
// Implementations: Webcam (gocv) for real hardware, MockDevice for tests.
type Device interface {
	// Open acquires the device with the requested configuration.
	// It maps acquisition failures onto ErrPermissionDenied or
	// ErrDeviceError.
	Open(cfg Config) error

	// Frame reads the current frame and returns it encoded as JPEG at the
	// configured quality.
	Frame() ([]byte, error)

	// Resolution reports the device's native frame size.
	// Both values are zero when the device cannot report it.
	Resolution() (width, height int)

	// Close releases the device. Safe to call when not open.
	Close() error
}
