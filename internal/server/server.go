// Package server exposes the party-game engines over a websocket transport.
// Each connection serves one user; each user holds at most one session per
// game, and every completed action is persisted before the reply is sent.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/partytable/internal/random"
	"github.com/lox/partytable/internal/session"
)

// Options configures a Server. Zero-value fields get production defaults.
type Options struct {
	Store session.Store

	// Clock drives deferred outcome delivery (wheel spins). Tests inject
	// quartz mocks.
	Clock quartz.Clock

	// NewSource supplies each session's random source. Tests inject fixed
	// sequences.
	NewSource func() random.Source

	SpinDelayMs int
}

// Server is the websocket server.
type Server struct {
	store       session.Store
	clock       quartz.Clock
	newSource   func() random.Source
	spinDelayMs int

	upgrader    websocket.Upgrader
	logger      *log.Logger
	mu          sync.RWMutex
	connections map[*Connection]bool
}

// NewServer creates a server around the given session store.
func NewServer(logger *log.Logger, opts Options) *Server {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.NewSource == nil {
		opts.NewSource = random.NewTime
	}

	return &Server{
		store:       opts.Store,
		clock:       opts.Clock,
		newSource:   opts.NewSource,
		spinDelayMs: opts.SpinDelayMs,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// For development, allow all origins.
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]bool),
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is cancelled, then drains connections.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting websocket server", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)

	s.mu.Lock()
	for conn := range s.connections {
		_ = conn.Close()
	}
	s.mu.Unlock()

	return err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s.logger, s)

	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "total", total)

	conn.Start()
}

func (s *Server) forget(c *Connection) {
	s.mu.Lock()
	delete(s.connections, c)
	s.mu.Unlock()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
