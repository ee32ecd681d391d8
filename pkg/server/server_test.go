package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lifescan-ai/go-lifescan/pkg/analyze"
	"github.com/lifescan-ai/go-lifescan/pkg/server"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	srv, err := server.New(analyze.NewMock(), server.Config{
		Port:      0,
		UploadDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return srv
}

// multipartImage builds a multipart body with one image field.
func multipartImage(t *testing.T, filename string, data []byte, mode string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(data)
	if mode != "" {
		mw.WriteField("mode", mode)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	if body["status"] != "ok" || body["service"] != "lifescan-backend" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestScanSuccess(t *testing.T) {
	srv := newTestServer(t)

	buf, contentType := multipartImage(t, "face.jpg", []byte("jpeg-bytes"), "")
	req := httptest.NewRequest(http.MethodPost, "/scan", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var result analyze.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Summary == "" {
		t.Error("expected a summary")
	}
	if result.Meta.Mode != analyze.ModeCognitive {
		t.Errorf("expected default cognitive mode, got %q", result.Meta.Mode)
	}
	if result.Meta.Engine != "mock" {
		t.Errorf("expected mock engine, got %q", result.Meta.Engine)
	}
}

func TestScanModeField(t *testing.T) {
	srv := newTestServer(t)

	buf, contentType := multipartImage(t, "face.jpg", []byte("jpeg-bytes"), "physical")
	req := httptest.NewRequest(http.MethodPost, "/scan", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result analyze.Result
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Meta.Mode != analyze.ModePhysical {
		t.Errorf("expected physical mode, got %q", result.Meta.Mode)
	}
}

func TestScanInvalidMode(t *testing.T) {
	srv := newTestServer(t)

	buf, contentType := multipartImage(t, "face.jpg", []byte("jpeg-bytes"), "spiritual")
	req := httptest.NewRequest(http.MethodPost, "/scan", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != "mode must be 'cognitive' or 'physical'" {
		t.Errorf("unexpected error message: %q", got)
	}
}

func TestScanMissingImage(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("mode", "cognitive")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/scan", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != "No image uploaded" {
		t.Errorf("unexpected error message: %q", got)
	}
}

func TestScanRejectsExtension(t *testing.T) {
	srv := newTestServer(t)

	buf, contentType := multipartImage(t, "payload.exe", []byte("bytes"), "")
	req := httptest.NewRequest(http.MethodPost, "/scan", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != "Invalid file" {
		t.Errorf("unexpected error message: %q", got)
	}
}

func TestScanModeRoutes(t *testing.T) {
	srv := newTestServer(t)

	for _, route := range []struct {
		path string
		mode string
	}{
		{"/api/scan/cognitive", analyze.ModeCognitive},
		{"/api/scan/physical", analyze.ModePhysical},
	} {
		t.Run(route.mode, func(t *testing.T) {
			buf, contentType := multipartImage(t, "face.png", []byte("png-bytes"), "")
			req := httptest.NewRequest(http.MethodPost, route.path, buf)
			req.Header.Set("Content-Type", contentType)

			resp, err := srv.App().Test(req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}

			var result analyze.Result
			json.NewDecoder(resp.Body).Decode(&result)
			if result.Meta.Mode != route.mode {
				t.Errorf("expected mode %q, got %q", route.mode, result.Meta.Mode)
			}
		})
	}
}

func TestScanEngineFailure(t *testing.T) {
	srv, err := server.New(failingEngine{}, server.Config{UploadDir: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf, contentType := multipartImage(t, "face.jpg", []byte("jpeg-bytes"), "")
	req := httptest.NewRequest(http.MethodPost, "/scan", buf)
	req.Header.Set("Content-Type", contentType)

	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if got := decodeError(t, resp); got != "Scan failed" {
		t.Errorf("unexpected error message: %q", got)
	}
}

type failingEngine struct{}

func (failingEngine) Name() string { return "failing" }

func (failingEngine) Analyze(ctx context.Context, image []byte, mode string) (*analyze.Result, error) {
	return nil, io.ErrUnexpectedEOF
}
