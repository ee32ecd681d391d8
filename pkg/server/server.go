// Package server implements the LifeScan scan service: multipart image
// uploads in, analysis results out, plus a websocket event stream any HUD
// page can follow.
package server

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/lifescan-ai/go-lifescan/pkg/analyze"
	"github.com/lifescan-ai/go-lifescan/pkg/hub"
)

// DefaultMaxUploadBytes caps uploads at 10 MiB, matching the original
// frontend contract.
const DefaultMaxUploadBytes = 10 * 1024 * 1024

// Config holds scan service configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// StaticDir serves a frontend bundle when it exists. Optional.
	StaticDir string

	// UploadDir stages uploads for the duration of a request.
	UploadDir string

	// MaxUploadBytes bounds the request body size.
	MaxUploadBytes int

	// Logger is the structured logger.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults for local use.
func DefaultConfig() Config {
	return Config{
		Port:           8000,
		UploadDir:      "uploads",
		MaxUploadBytes: DefaultMaxUploadBytes,
	}
}

// Server is the scan service.
type Server struct {
	app    *fiber.App
	cfg    Config
	engine analyze.Engine
	events *hub.Hub
	logger *slog.Logger
}

// New creates a scan service around an analysis engine.
func New(engine analyze.Engine, cfg Config) (*Server, error) {
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "server")

	if cfg.UploadDir != "" {
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			return nil, fmt.Errorf("server: create upload dir: %w", err)
		}
	}

	s := &Server{
		cfg:    cfg,
		engine: engine,
		events: hub.New("events", logger),
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "LifeScan AI",
		DisableStartupMessage: true,
		BodyLimit:             cfg.MaxUploadBytes,
	})

	app.Use(cors.New())

	// API routes
	app.Get("/api/health", s.handleHealth)
	app.Post("/scan", s.handleScan)
	app.Post("/api/scan/cognitive", s.handleScanMode(analyze.ModeCognitive))
	app.Post("/api/scan/physical", s.handleScanMode(analyze.ModePhysical))

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/events", websocket.New(s.handleEventsWS))

	// Frontend bundle, when one is deployed next to the service
	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			app.Static("/", cfg.StaticDir)
		}
	}

	s.app = app
	return s, nil
}

// Start runs the event hub and listens for connections. It blocks.
func (s *Server) Start() error {
	go s.events.Run()
	s.logger.Info("scan service listening", "port", s.cfg.Port)
	return s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
}

// Shutdown gracefully stops the server and the event hub.
func (s *Server) Shutdown() error {
	s.events.Stop()
	return s.app.Shutdown()
}

// App exposes the fiber app for handler tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Events exposes the event hub.
func (s *Server) Events() *hub.Hub {
	return s.events
}

// Event is one scan lifecycle notification on the event stream.
type Event struct {
	Type   string    `json:"type"`
	ScanID string    `json:"scan_id"`
	Mode   string    `json:"mode,omitempty"`
	Engine string    `json:"engine,omitempty"`
	Time   time.Time `json:"time"`
}

// handleEventsWS attaches one HUD page to the event hub.
func (s *Server) handleEventsWS(conn *websocket.Conn) {
	client := hub.NewClient(s.events, conn)
	client.Run()
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": "lifescan-backend"})
}
