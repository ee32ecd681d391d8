package hud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// wsEventServer upgrades one connection and forwards decoded events.
func wsEventServer(t *testing.T) (*httptest.Server, chan Event) {
	t.Helper()
	events := make(chan Event, 16)
	upgrader := websocket.Upgrader{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev Event
			if err := json.Unmarshal(data, &ev); err != nil {
				t.Errorf("decode event: %v", err)
				return
			}
			events <- ev
		}
	}))
	return server, events
}

func waitEvent(t *testing.T, events chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestRemoteForwardsHooks(t *testing.T) {
	server, events := wsEventServer(t)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	remote, err := NewRemote(url, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer remote.Close()

	remote.StartScan()
	if ev := waitEvent(t, events); ev.Hook != "startScan" {
		t.Errorf("unexpected hook: %q", ev.Hook)
	}

	remote.SetStageProgress(2, 55)
	ev := waitEvent(t, events)
	if ev.Hook != "setStageProgress" || ev.Stage != 2 || ev.Percent != 55 {
		t.Errorf("unexpected event: %+v", ev)
	}

	remote.FinishScan(Report{Summary: "ok", ConfidencePct: 87})
	ev = waitEvent(t, events)
	if ev.Hook != "finishScan" || ev.Report == nil || ev.Report.Summary != "ok" {
		t.Errorf("unexpected event: %+v", ev)
	}

	remote.DrawRegions([]Region{{X: 0.1, Note: "eye region"}})
	ev = waitEvent(t, events)
	if ev.Hook != "drawRegions" || len(ev.Regions) != 1 {
		t.Errorf("unexpected event: %+v", ev)
	}

	remote.ScanError("Scan failed: server error")
	ev = waitEvent(t, events)
	if ev.Hook != "scanError" || ev.Message != "Scan failed: server error" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestRemoteCloseTwice(t *testing.T) {
	server, _ := wsEventServer(t)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	remote, err := NewRemote(url, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	remote.Close()
	remote.Close()
}

func TestRemoteDialFailure(t *testing.T) {
	if _, err := NewRemote("ws://127.0.0.1:1/ws/hud", nil); err == nil {
		t.Fatal("expected a dial error")
	}
}
