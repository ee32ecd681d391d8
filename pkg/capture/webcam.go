package capture

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"gocv.io/x/gocv"
)

// Webcam is a Device backed by a local camera through OpenCV.
type Webcam struct {
	mu      sync.Mutex
	cam     *gocv.VideoCapture
	mat     gocv.Mat
	quality int
}

// NewWebcam creates an unopened webcam device.
func NewWebcam() *Webcam {
	return &Webcam{}
}

// Open acquires the camera device.
func (w *Webcam) Open(cfg Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam != nil {
		return nil
	}

	cam, err := gocv.OpenVideoCapture(cfg.DeviceID)
	if err != nil {
		return classifyDeviceError(err)
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))

	w.cam = cam
	w.mat = gocv.NewMat()
	w.quality = cfg.Quality
	if w.quality == 0 {
		w.quality = DefaultJPEGQuality
	}
	return nil
}

// Frame reads one frame and encodes it as JPEG.
func (w *Webcam) Frame() ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam == nil {
		return nil, ErrNoActiveSession
	}

	if ok := w.cam.Read(&w.mat); !ok || w.mat.Empty() {
		return nil, fmt.Errorf("%w: read frame failed", ErrDeviceError)
	}

	// Devices that report no frame size deliver frames we cannot trust
	// dimensionally; normalize those to the fallback size.
	mat := w.mat
	if w.mat.Cols() == 0 || w.mat.Rows() == 0 {
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(w.mat, &resized, image.Pt(FallbackWidth, FallbackHeight), 0, 0, gocv.InterpolationLinear)
		mat = resized
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat,
		[]int{gocv.IMWriteJpegQuality, w.quality})
	if err != nil {
		return nil, fmt.Errorf("%w: encode frame: %v", ErrDeviceError, err)
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())
	return data, nil
}

// Resolution reports the device's native frame size.
func (w *Webcam) Resolution() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam == nil {
		return 0, 0
	}
	return int(w.cam.Get(gocv.VideoCaptureFrameWidth)),
		int(w.cam.Get(gocv.VideoCaptureFrameHeight))
}

// Close releases the camera device.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cam == nil {
		return nil
	}

	err := w.cam.Close()
	w.mat.Close()
	w.cam = nil
	return err
}

// classifyDeviceError maps an acquisition failure onto the error taxonomy.
func classifyDeviceError(err error) error {
	if errors.Is(err, os.ErrPermission) ||
		strings.Contains(strings.ToLower(err.Error()), "permission denied") {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return fmt.Errorf("%w: %v", ErrDeviceError, err)
}

var _ Device = (*Webcam)(nil)
