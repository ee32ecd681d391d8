// Package config provides configuration helpers for go-lifescan commands.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/lifescan-ai/go-lifescan/internal/log"
)

// Default endpoints and ports.
const (
	DefaultScanEndpoint = "http://localhost:8000/scan"
	DefaultPort         = 8000
)

// LoadDotenv loads a .env file if one is present.
// Missing files are fine; real deployments use the process environment.
func LoadDotenv() {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}
}

// ScanEndpoint returns the scan service URL from SCAN_ENDPOINT.
// Falls back to the local default if not set.
func ScanEndpoint() string {
	return Env("SCAN_ENDPOINT", DefaultScanEndpoint)
}

// Env returns the value of key or a default when unset or empty.
func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt returns the integer value of key or a default when unset or invalid.
func EnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// AzureVisionEndpoint returns the Azure Vision endpoint, empty when not configured.
func AzureVisionEndpoint() string {
	return os.Getenv("AZURE_VISION_ENDPOINT")
}

// AzureVisionKey returns the Azure Vision subscription key, empty when not configured.
func AzureVisionKey() string {
	return os.Getenv("AZURE_VISION_KEY")
}

// OpenAIKey returns the OpenAI API key, empty when not configured.
func OpenAIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}
