package hud

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// remoteWriteWait bounds a single websocket write.
const remoteWriteWait = 5 * time.Second

// Event is the wire form of one forwarded hook call.
type Event struct {
	Hook    string   `json:"hook"`
	Stage   int      `json:"stage,omitempty"`
	Percent int      `json:"percent,omitempty"`
	Score   int      `json:"score,omitempty"`
	Message string   `json:"message,omitempty"`
	Report  *Report  `json:"report,omitempty"`
	Regions []Region `json:"regions,omitempty"`
}

// Remote is a Presenter that forwards hook calls as JSON events over a
// websocket, so a browser HUD page can mirror the client's scan state.
// Hooks never block: events are queued and dropped when the peer is slow.
type Remote struct {
	conn      *websocket.Conn
	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// NewRemote dials the HUD websocket endpoint and starts the forwarder.
func NewRemote(url string, logger *slog.Logger) (*Remote, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("hud: dial %s: %w", url, err)
	}

	r := &Remote{
		conn:   conn,
		send:   make(chan Event, 64),
		done:   make(chan struct{}),
		logger: logger.With("component", "hud.remote"),
	}
	go r.writePump()
	return r, nil
}

// writePump is the only goroutine that writes to the connection.
func (r *Remote) writePump() {
	for {
		select {
		case ev := <-r.send:
			data, err := json.Marshal(ev)
			if err != nil {
				r.logger.Warn("encode event failed", "hook", ev.Hook, "error", err)
				continue
			}
			r.conn.SetWriteDeadline(time.Now().Add(remoteWriteWait))
			if err := r.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				r.logger.Warn("forward event failed", "hook", ev.Hook, "error", err)
				return
			}
		case <-r.done:
			r.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// emit queues an event, dropping it when the queue is full.
func (r *Remote) emit(ev Event) {
	select {
	case r.send <- ev:
	default:
		r.logger.Debug("event queue full, dropping", "hook", ev.Hook)
	}
}

// Close stops the forwarder and closes the connection.
// Safe to call more than once.
func (r *Remote) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	return r.conn.Close()
}

func (r *Remote) StartCameraHUD() { r.emit(Event{Hook: "startCameraHUD"}) }
func (r *Remote) StopCameraHUD()  { r.emit(Event{Hook: "stopCameraHUD"}) }
func (r *Remote) ResetHUD()       { r.emit(Event{Hook: "resetHUD"}) }
func (r *Remote) PreviewReady()   { r.emit(Event{Hook: "previewReady"}) }
func (r *Remote) StartScan()      { r.emit(Event{Hook: "startScan"}) }

func (r *Remote) SetStageProgress(stage int, percent int) {
	r.emit(Event{Hook: "setStageProgress", Stage: stage, Percent: percent})
}

func (r *Remote) FinishScan(report Report) {
	r.emit(Event{Hook: "finishScan", Report: &report})
}

func (r *Remote) DrawRegions(regions []Region) {
	r.emit(Event{Hook: "drawRegions", Regions: regions})
}

func (r *Remote) AnimateScore(score int) {
	r.emit(Event{Hook: "animateScore", Score: score})
}

func (r *Remote) Alert(msg string) {
	r.emit(Event{Hook: "alert", Message: msg})
}

func (r *Remote) ScanError(msg string) {
	r.emit(Event{Hook: "scanError", Message: msg})
}

var _ Presenter = (*Remote)(nil)
