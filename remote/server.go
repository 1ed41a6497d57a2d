package remote

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	inputs "github.com/richinsley/goshaderdemos/inputs"
)

// Message is one input event sent by a remote client as JSON.
type Message struct {
	Type   string  `json:"type"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Button int     `json:"button,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// Event converts the message to an input event.
func (m Message) Event() (inputs.Event, error) {
	switch m.Type {
	case "move":
		return inputs.MoveEvent(m.X, m.Y), nil
	case "down":
		return inputs.DownEvent(inputs.Button(m.Button), m.X, m.Y), nil
	case "up":
		return inputs.UpEvent(inputs.Button(m.Button), m.X, m.Y), nil
	case "wheel":
		return inputs.WheelEvent(m.DeltaY), nil
	case "select":
		return inputs.SelectEvent(m.Label), nil
	default:
		return inputs.Event{}, fmt.Errorf("unknown message type %q", m.Type)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server accepts websocket clients on /ws and forwards their messages to
// the input queue, so a browser page can drive a running demo.
type Server struct {
	events  *inputs.Queue
	srv     *http.Server
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewServer(addr string, events *inputs.Queue) *Server {
	s := &Server{
		events:  events,
		clients: make(map[*websocket.Conn]struct{}),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start listens in the background and returns the bound address.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Remote input server error: %v", err)
		}
	}()
	log.Printf("Remote input listening on ws://%s/ws", ln.Addr())
	return ln.Addr().String(), nil
}

// Shutdown stops accepting clients and closes open connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("WebSocket read error:", err)
			}
			return
		}
		ev, err := msg.Event()
		if err != nil {
			log.Printf("Warning: ignoring remote message: %v", err)
			continue
		}
		s.events.Push(ev)
	}
}
