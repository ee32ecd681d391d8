// LifeScan server - the scan service behind the client's /scan endpoint.
//
// Runs with the deterministic mock engine by default; set
// AZURE_VISION_ENDPOINT and AZURE_VISION_KEY (plus OPENAI_API_KEY for real
// summaries) to analyze with Azure, falling back to the mock when the
// upstream fails.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/lifescan-ai/go-lifescan/internal/config"
	"github.com/lifescan-ai/go-lifescan/internal/log"
	"github.com/lifescan-ai/go-lifescan/pkg/analyze"
	"github.com/lifescan-ai/go-lifescan/pkg/server"
)

func main() {
	var (
		port      = flag.Int("port", 0, "listen port (default: PORT or 8000)")
		staticDir = flag.String("static", "frontend", "frontend bundle directory")
		debug     = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	config.LoadDotenv()
	if *debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}

	if *port == 0 {
		*port = config.EnvInt("PORT", config.DefaultPort)
	}

	engine := buildEngine()

	cfg := server.DefaultConfig()
	cfg.Port = *port
	cfg.StaticDir = *staticDir
	cfg.UploadDir = config.Env("UPLOAD_DIR", cfg.UploadDir)
	cfg.Logger = log.L()

	srv, err := server.New(engine, cfg)
	if err != nil {
		log.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown on Ctrl+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		srv.Shutdown()
	}()

	if err := srv.Start(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// buildEngine wires the analysis chain from the environment.
func buildEngine() analyze.Engine {
	mock := analyze.NewMock()

	azure, err := analyze.NewAzure(analyze.AzureConfig{
		VisionEndpoint: config.AzureVisionEndpoint(),
		VisionKey:      config.AzureVisionKey(),
		OpenAIKey:      config.OpenAIKey(),
		Logger:         log.L(),
	})
	if err != nil {
		log.Info("azure not configured, using mock engine")
		return mock
	}

	log.Info("azure engine enabled with mock fallback")
	return analyze.NewChain(log.L(), azure, mock)
}
