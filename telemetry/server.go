package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"dieviewer/simulation"
)

// shutdownTimeout bounds how long Serve waits for connections to drain
const shutdownTimeout = 2 * time.Second

// writeTimeout drops clients that stop reading
const writeTimeout = time.Second

const (
	CommandReset = "reset"
	CommandSpin  = "spin"
)

// StateMessage is the JSON pushed to every client
type StateMessage struct {
	Type          string     `json:"type"`
	Heading       float64    `json:"heading"`
	Pitch         float64    `json:"pitch"`
	Azimuth       float64    `json:"azimuth"`
	Elevation     float64    `json:"elevation"`
	Radius        float64    `json:"radius"`
	Position      [3]float64 `json:"position"`
	Dragging      bool       `json:"dragging"`
	Mode          string     `json:"mode"`
	MomentumMode  string     `json:"momentumMode"`
	SpinVelocity  [2]float64 `json:"spinVelocity"`
	OrbitVelocity [2]float64 `json:"orbitVelocity"`
	Resetting     bool       `json:"resetting"`
}

// NewStateMessage flattens a controller snapshot for the wire
func NewStateMessage(s simulation.State) StateMessage {
	return StateMessage{
		Type:          "state",
		Heading:       s.Pose.Heading,
		Pitch:         s.Pose.Pitch,
		Azimuth:       s.Pose.Azimuth,
		Elevation:     s.Pose.Elevation,
		Radius:        s.Pose.Radius,
		Position:      s.Pose.Position(),
		Dragging:      s.Dragging,
		Mode:          s.Mode.String(),
		MomentumMode:  s.MomentumMode.String(),
		SpinVelocity:  s.SpinVelocity,
		OrbitVelocity: s.OrbitVelocity,
		Resetting:     s.Resetting,
	}
}

// Command is a request from a client. Yaw and Pitch are spin rates in
// degrees per second, used by the spin command.
type Command struct {
	Command string  `json:"command"`
	Yaw     float64 `json:"yaw"`
	Pitch   float64 `json:"pitch"`
}

// Hub streams viewer state to WebSocket clients and queues their commands
// for the render loop. The render loop only calls Publish and drains
// Commands; everything else runs on the hub's goroutines.
type Hub struct {
	upgrader     websocket.Upgrader
	interval     time.Duration
	writeTimeout time.Duration

	stateMu sync.RWMutex
	latest  *StateMessage

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	commands chan Command
}

// NewHub creates a hub that broadcasts every interval
func NewHub(interval time.Duration) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local debugging tool
			},
		},
		interval:     interval,
		writeTimeout: writeTimeout,
		clients:      make(map[*websocket.Conn]*sync.Mutex),
		commands:     make(chan Command, 16),
	}
}

// Handler serves /ws and /healthz
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	return mux
}

// Publish records the newest state; the broadcast loop picks it up
func (h *Hub) Publish(s simulation.State) {
	msg := NewStateMessage(s)
	h.stateMu.Lock()
	h.latest = &msg
	h.stateMu.Unlock()
}

// Commands delivers client commands in arrival order
func (h *Hub) Commands() <-chan Command {
	return h.commands
}

// ClientCount is the number of connected clients
func (h *Hub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	h.clientsMu.Lock()
	h.clients[conn] = connMutex
	h.clientsMu.Unlock()
	defer func() {
		h.clientsMu.Lock()
		delete(h.clients, conn)
		h.clientsMu.Unlock()
	}()
	slog.Info("telemetry client connected", "remote", r.RemoteAddr)

	// send the current state right away
	if msg, ok := h.snapshot(); ok {
		if err := h.write(conn, connMutex, msg); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read error", "err", err)
			}
			break
		}
		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			slog.Warn("malformed telemetry command", "remote", r.RemoteAddr, "err", err)
			continue
		}
		h.enqueue(cmd)
	}
	slog.Info("telemetry client disconnected", "remote", r.RemoteAddr)
}

func (h *Hub) enqueue(cmd Command) {
	switch cmd.Command {
	case CommandReset, CommandSpin:
	default:
		slog.Warn("unknown telemetry command", "command", cmd.Command)
		return
	}

	select {
	case h.commands <- cmd:
	default:
		slog.Warn("telemetry command queue full, dropping", "command", cmd.Command)
	}
}

func (h *Hub) snapshot() (StateMessage, bool) {
	h.stateMu.RLock()
	defer h.stateMu.RUnlock()
	if h.latest == nil {
		return StateMessage{}, false
	}
	return *h.latest, true
}

// Run broadcasts the latest state every interval until ctx is done
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if msg, ok := h.snapshot(); ok {
				h.broadcast(msg)
			}
		}
	}
}

// write sends msg to one client, serialized with its other writers
func (h *Hub) write(conn *websocket.Conn, mutex *sync.Mutex, msg StateMessage) error {
	mutex.Lock()
	defer mutex.Unlock()
	conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))
	return conn.WriteJSON(msg)
}

func (h *Hub) broadcast(msg StateMessage) {
	type target struct {
		conn  *websocket.Conn
		mutex *sync.Mutex
	}

	// a slow client must not hold the lock ClientCount needs
	h.clientsMu.RLock()
	targets := make([]target, 0, len(h.clients))
	for client, mutex := range h.clients {
		targets = append(targets, target{client, mutex})
	}
	h.clientsMu.RUnlock()

	var failed []*websocket.Conn
	for _, t := range targets {
		if err := h.write(t.conn, t.mutex, msg); err != nil {
			slog.Debug("websocket write error", "err", err)
			failed = append(failed, t.conn)
		}
	}

	// remove failed clients
	if len(failed) > 0 {
		h.clientsMu.Lock()
		for _, client := range failed {
			client.Close()
			delete(h.clients, client)
		}
		h.clientsMu.Unlock()
	}
}

// closeClients drops every connection; Shutdown does not touch hijacked ones
func (h *Hub) closeClients() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}

// Serve listens on addr and serves the hub until ctx is done
func (h *Hub) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("telemetry listen on %s: %w", addr, err)
	}
	return h.serve(ctx, ln)
}

func (h *Hub) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		h.closeClients()
	}()

	slog.Info("telemetry listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("telemetry server: %w", err)
	}
	return nil
}
