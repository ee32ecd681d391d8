package capture

import "errors"

// Sentinel errors for camera and payload conditions.
var (
	// ErrDeviceUnavailable is returned when no capture device backend
	// exists on this platform or none was configured.
	ErrDeviceUnavailable = errors.New("capture: no camera device available")

	// ErrPermissionDenied is returned when device acquisition is rejected.
	ErrPermissionDenied = errors.New("capture: camera permission denied")

	// ErrDeviceError is returned when the device fails during
	// acquisition or frame readout.
	ErrDeviceError = errors.New("capture: camera device error")

	// ErrNoActiveSession is returned when a frame capture is attempted
	// without an open camera session.
	ErrNoActiveSession = errors.New("capture: no active camera session")

	// ErrNoPayload is returned when no image has been captured or selected.
	ErrNoPayload = errors.New("capture: no image payload")
)
