package capture

// Fallback frame size used when the device cannot report its native
// resolution.
const (
	FallbackWidth  = 1280
	FallbackHeight = 720
)

// DefaultJPEGQuality matches the encoder quality used for captured frames.
const DefaultJPEGQuality = 90

// Config holds capture device configuration.
type Config struct {
	// DeviceID selects the capture device (0 is the system default camera).
	DeviceID int `json:"device_id"`

	// Width and Height request a frame size from the device.
	// The device's native size wins when it differs.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Quality is the JPEG encoder quality, 1-100.
	Quality int `json:"quality"`

	// Facing requests a camera facing mode where the platform supports
	// selection. Values: "environment" (rear), "user" (front).
	Facing string `json:"facing"`
}

// DefaultConfig returns the recommended capture configuration:
// 720p rear-facing frames encoded at quality 90.
func DefaultConfig() Config {
	return Config{
		DeviceID: 0,
		Width:    FallbackWidth,
		Height:   FallbackHeight,
		Quality:  DefaultJPEGQuality,
		Facing:   "environment",
	}
}

// HD1080Config returns a 1080p configuration for devices that support it.
func HD1080Config() Config {
	cfg := DefaultConfig()
	cfg.Width = 1920
	cfg.Height = 1080
	return cfg
}

// Validate checks that the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errs []string

	if c.DeviceID < 0 {
		errs = append(errs, "device_id must not be negative")
	}
	if c.Width < 160 || c.Height < 120 {
		errs = append(errs, "frame size must be at least 160x120")
	}
	if c.Quality < 1 || c.Quality > 100 {
		errs = append(errs, "quality must be between 1 and 100")
	}

	validFacing := map[string]bool{"": true, "environment": true, "user": true}
	if !validFacing[c.Facing] {
		errs = append(errs, "facing must be environment or user")
	}

	return errs
}
