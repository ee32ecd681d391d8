// LifeScan client - capture an image and run one health scan.
//
// Scans a file:
//
//	lifescan -file selfie.jpg
//
// Or a live camera frame:
//
//	lifescan -camera
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/lifescan-ai/go-lifescan/internal/config"
	"github.com/lifescan-ai/go-lifescan/internal/log"
	"github.com/lifescan-ai/go-lifescan/pkg/capture"
	"github.com/lifescan-ai/go-lifescan/pkg/hud"
	"github.com/lifescan-ai/go-lifescan/pkg/scan"
)

func main() {
	var (
		filePath  = flag.String("file", "", "image file to scan instead of the camera")
		useCamera = flag.Bool("camera", false, "open the camera and scan a live frame")
		deviceID  = flag.Int("device", 0, "camera device id")
		endpoint  = flag.String("endpoint", "", "scan service URL (default: SCAN_ENDPOINT)")
		mode      = flag.String("mode", "", "analysis mode: cognitive or physical")
		hudURL    = flag.String("hud", "", "forward HUD events to this websocket URL")
		debug     = flag.Bool("debug", false, "verbose logging")
	)
	flag.Parse()

	config.LoadDotenv()
	if *debug {
		log.Init("debug")
	} else {
		log.Init("info")
	}

	if *endpoint == "" {
		*endpoint = config.ScanEndpoint()
	}
	if *filePath == "" && !*useCamera {
		fmt.Fprintln(os.Stderr, "Error: provide -file or -camera")
		flag.Usage()
		os.Exit(2)
	}

	presenter := hud.Presenter(hud.NewTerminal())
	if *hudURL != "" {
		remote, err := hud.NewRemote(*hudURL, log.L())
		if err != nil {
			log.Error("remote HUD unavailable", "url", *hudURL, "error", err)
			os.Exit(1)
		}
		defer remote.Close()
		presenter = hud.Multi{presenter, remote}
	}

	var dev capture.Device
	if *useCamera {
		dev = capture.NewWebcam()
	}

	cfg := capture.DefaultConfig()
	cfg.DeviceID = *deviceID

	ctrl := capture.New(dev,
		capture.WithConfig(cfg),
		capture.WithPresenter(presenter),
		capture.WithLogger(log.L()),
	)
	defer ctrl.Clear()

	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: read %s: %v\n", *filePath, err)
			os.Exit(1)
		}
		ctrl.SelectFile(filepath.Base(*filePath), data)
	} else {
		if _, err := ctrl.OpenCamera(); err != nil {
			os.Exit(1)
		}
	}

	client, err := scan.NewClient(ctrl,
		scan.WithEndpoint(*endpoint),
		scan.WithMode(*mode),
		scan.WithPresenter(presenter),
		scan.WithLogger(log.L()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The scan session lazily captures a frame when the camera is live,
	// so both paths converge here.
	if _, err := client.RunScan(ctx); err != nil {
		// The presenter already showed the failure; exit non-zero.
		os.Exit(1)
	}
}
