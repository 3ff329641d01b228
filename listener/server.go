package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
)

// Server is an http.Server with a start and stop lifecycle.
type Server struct {
	name       string
	config     Config
	server     *http.Server
	onServeErr func()

	mu       sync.Mutex
	listener net.Listener
}

// NewServer applies the Config defaults, validates it and prepares a server
// for handler. onServeErr, when set, is called if serving stops for any
// reason other than Stop.
func NewServer(name string, handler http.Handler, cfg Config, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("listener %s: %w", name, err)
	}

	return &Server{
		name:   name,
		config: cfg,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		onServeErr: onServeErr,
	}, nil
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.config
}

// Addr returns the bound address once started, which differs from the
// configured one when it asked for port 0.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return s.config.Address
	}

	return s.listener.Addr().String()
}

// Start binds the address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	ln, err := listenCfg.Listen(ctx, "tcp", s.config.Address)
	if err != nil {
		slog.Error("failed to listen", "name", s.name, "address", s.config.Address, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	slog.Info("serving parameters", "name", s.name, "address", ln.Addr().String())

	go s.serve(ln)

	return nil
}

func (s *Server) serve(ln net.Listener) {
	err := s.server.Serve(ln)
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return
	}

	slog.Error("HTTP listener error", "name", s.name, "error", err)

	if s.onServeErr != nil {
		s.onServeErr()
	}
}

// Stop drains in-flight requests. Without a deadline on ctx it waits at
// most ShutdownTimeout.
func (s *Server) Stop(ctx context.Context) error {
	slog.Info("stopping HTTP listener", "name", s.name)

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	err := s.server.Shutdown(ctx)
	if err != nil {
		slog.Error("shutdown failed", "name", s.name, "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}
