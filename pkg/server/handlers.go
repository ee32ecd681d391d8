package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/lifescan-ai/go-lifescan/pkg/analyze"
)

// allowedExtensions are the upload types the service accepts.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".bmp":  true,
	".gif":  true,
}

// allowedFile checks the upload's filename extension.
func allowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// handleScan serves the frontend's default /scan path. The mode arrives as
// a form field or query parameter and defaults to cognitive.
func (s *Server) handleScan(c *fiber.Ctx) error {
	mode := strings.ToLower(c.FormValue("mode"))
	if mode == "" {
		mode = strings.ToLower(c.Query("mode", analyze.ModeCognitive))
	}
	if !analyze.ValidMode(mode) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "mode must be 'cognitive' or 'physical'"})
	}
	return s.runScan(c, mode)
}

// handleScanMode serves the mode-specific API routes.
func (s *Server) handleScanMode(mode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return s.runScan(c, mode)
	}
}

// runScan validates the upload, stages it, and runs the analysis engine.
func (s *Server) runScan(c *fiber.Ctx, mode string) error {
	header, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "No image uploaded"})
	}
	if header.Filename == "" || !allowedFile(header.Filename) {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Invalid file"})
	}

	file, err := header.Open()
	if err != nil {
		s.logger.Error("open upload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Scan failed"})
	}
	img, err := io.ReadAll(file)
	file.Close()
	if err != nil || len(img) == 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "Invalid file"})
	}

	scanID := uuid.New().String()

	// Stage the upload on disk for the duration of the request, the way
	// the analysis tooling expects scans to be inspectable while running.
	if s.cfg.UploadDir != "" {
		staged := filepath.Join(s.cfg.UploadDir,
			fmt.Sprintf("%s_%s", scanID, filepath.Base(header.Filename)))
		if err := os.WriteFile(staged, img, 0o644); err != nil {
			s.logger.Warn("stage upload failed", "error", err)
		} else {
			defer os.Remove(staged)
		}
	}

	s.events.BroadcastJSON(Event{
		Type: "scan.started", ScanID: scanID, Mode: mode, Time: time.Now(),
	})

	result, err := s.engine.Analyze(c.Context(), img, mode)
	if err != nil {
		s.logger.Error("scan failed", "scan_id", scanID, "mode", mode, "error", err)
		s.events.BroadcastJSON(Event{
			Type: "scan.failed", ScanID: scanID, Mode: mode, Time: time.Now(),
		})
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Scan failed"})
	}

	s.logger.Info("scan completed",
		"scan_id", scanID,
		"mode", mode,
		"engine", result.Meta.Engine,
		"bytes", len(img),
	)
	s.events.BroadcastJSON(Event{
		Type: "scan.completed", ScanID: scanID, Mode: mode,
		Engine: result.Meta.Engine, Time: time.Now(),
	})

	return c.JSON(result)
}
