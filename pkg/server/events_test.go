package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lifescan-ai/go-lifescan/pkg/analyze"
	"github.com/lifescan-ai/go-lifescan/pkg/server"
)

const eventsTestPort = 18090

// readEvent reads and decodes one event from the websocket.
func readEvent(t *testing.T, ws *websocket.Conn) server.Event {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	var ev server.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	return ev
}

func TestEventStreamDelivery(t *testing.T) {
	srv, err := server.New(analyze.NewMock(), server.Config{
		Port:      eventsTestPort,
		UploadDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	go srv.Start()
	defer srv.Shutdown()
	time.Sleep(100 * time.Millisecond)

	// Connect a HUD page to the event stream
	wsURL := fmt.Sprintf("ws://localhost:%d/ws/events", eventsTestPort)
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("WebSocket dial error: %v", err)
	}
	defer ws.Close()

	time.Sleep(50 * time.Millisecond)
	if srv.Events().ClientCount() != 1 {
		t.Errorf("ClientCount = %d, want 1", srv.Events().ClientCount())
	}

	// A direct broadcast reaches the registered client
	srv.Events().BroadcastJSON(server.Event{Type: "scan.started", ScanID: "direct"})
	if ev := readEvent(t, ws); ev.Type != "scan.started" || ev.ScanID != "direct" {
		t.Errorf("unexpected event: %+v", ev)
	}

	// A real scan emits started then completed with the same scan id
	buf, contentType := multipartImage(t, "face.jpg", []byte("jpeg-bytes"), "")
	resp, err := http.Post(
		fmt.Sprintf("http://localhost:%d/scan", eventsTestPort), contentType, buf)
	if err != nil {
		t.Fatalf("scan request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	started := readEvent(t, ws)
	if started.Type != "scan.started" || started.ScanID == "" {
		t.Errorf("unexpected event: %+v", started)
	}
	completed := readEvent(t, ws)
	if completed.Type != "scan.completed" {
		t.Errorf("unexpected event: %+v", completed)
	}
	if completed.ScanID != started.ScanID {
		t.Errorf("scan ids differ: %q vs %q", started.ScanID, completed.ScanID)
	}
	if completed.Engine != "mock" {
		t.Errorf("unexpected engine: %q", completed.Engine)
	}

	// Disconnect and verify deregistration
	ws.Close()
	time.Sleep(100 * time.Millisecond)
	if srv.Events().ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0 after disconnect", srv.Events().ClientCount())
	}
}
