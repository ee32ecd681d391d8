package config

import "testing"

func TestEnv(t *testing.T) {
	t.Setenv("LIFESCAN_TEST_VALUE", "hello")
	if got := Env("LIFESCAN_TEST_VALUE", "fallback"); got != "hello" {
		t.Errorf("expected set value, got %q", got)
	}
	if got := Env("LIFESCAN_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("LIFESCAN_TEST_PORT", "9000")
	if got := EnvInt("LIFESCAN_TEST_PORT", 8000); got != 9000 {
		t.Errorf("expected 9000, got %d", got)
	}

	t.Setenv("LIFESCAN_TEST_PORT", "not a number")
	if got := EnvInt("LIFESCAN_TEST_PORT", 8000); got != 8000 {
		t.Errorf("expected fallback for invalid value, got %d", got)
	}
}

func TestScanEndpointDefault(t *testing.T) {
	t.Setenv("SCAN_ENDPOINT", "")
	if got := ScanEndpoint(); got != DefaultScanEndpoint {
		t.Errorf("expected default endpoint, got %q", got)
	}

	t.Setenv("SCAN_ENDPOINT", "http://scan.internal:9000/scan")
	if got := ScanEndpoint(); got != "http://scan.internal:9000/scan" {
		t.Errorf("expected configured endpoint, got %q", got)
	}
}
