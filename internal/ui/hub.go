package ui

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"

	"raven/internal/session"
)

// Hub broadcasts render frames to connected avatar frontends over a
// websocket. New clients immediately receive the last frame so the avatar
// starts in the right state.
type Hub struct {
	// mu guards conns and last, and serializes every frame write: gorilla
	// connections allow only one concurrent writer, and Render is called
	// from both the turn and voice goroutines.
	mu       sync.Mutex
	conns    map[*ws.Conn]struct{}
	last     *Frame
	upgrader ws.Upgrader
	srv      *http.Server
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[*ws.Conn]struct{}),
		upgrader: ws.Upgrader{
			// Frontends run on the same machine; cross-origin is fine here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Start binds the listener and serves in the background. A bind failure is
// returned synchronously so startup can report it.
func (h *Hub) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("ui listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	h.srv = &http.Server{Handler: mux}
	go func() {
		if err := h.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Printf("ui server stopped: %v", err)
		}
	}()
	log.Printf("ui hub listening on ws://%s/ws", addr)
	return nil
}

func (h *Hub) Shutdown(ctx context.Context) error {
	if h.srv == nil {
		return nil
	}
	return h.srv.Shutdown(ctx)
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ui upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	if h.last != nil {
		if data, err := json.Marshal(h.last); err == nil {
			_ = conn.WriteMessage(ws.TextMessage, data)
		}
	}
	h.mu.Unlock()

	// Frontends only receive; the read loop exists to notice disconnects.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *ws.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *Hub) Render(state session.UIState, message string) {
	frame := Frame{State: state, Message: message, Ts: time.Now()}
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("ui frame encode: %v", err)
		return
	}

	h.mu.Lock()
	h.last = &frame
	var failed []*ws.Conn
	for c := range h.conns {
		if err := c.WriteMessage(ws.TextMessage, data); err != nil {
			failed = append(failed, c)
		}
	}
	h.mu.Unlock()

	for _, c := range failed {
		h.drop(c)
	}
}
