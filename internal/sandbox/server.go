package sandbox

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/directory"
	"github.com/muurk/userdeck/internal/discovery"
	"github.com/muurk/userdeck/internal/logging"
	"github.com/muurk/userdeck/internal/version"
)

// ShutdownTimeout bounds how long in-flight requests may take on shutdown
const ShutdownTimeout = 10 * time.Second

// Config holds the server configuration
type Config struct {
	Host      string
	Port      int  // 0 picks a free port
	Advertise bool // Announce over mDNS
	Instance  string
	Seed      []directory.User
}

// Server runs the sandbox directory over HTTP
type Server struct {
	config     Config
	store      *Store
	httpServer *http.Server
	listener   net.Listener
	ad         *discovery.Advertisement
}

// New creates a server. A nil Seed starts from SampleUsers.
func New(config Config) *Server {
	seed := config.Seed
	if seed == nil {
		seed = SampleUsers()
	}
	store := NewStore(seed)

	return &Server{
		config: config,
		store:  store,
		httpServer: &http.Server{
			Handler:           NewHandler(store).Router(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Store returns the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Listen binds the configured address. Run calls it if needed.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or "" before Listen
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the base URL clients should use
func (s *Server) URL() string {
	addr := s.Addr()
	if addr == "" {
		return ""
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if ip := net.ParseIP(host); ip == nil || ip.IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	logging.Info("Starting sandbox directory",
		zap.String("addr", s.Addr()),
		zap.Int("users", s.store.Len()),
	)

	if s.config.Advertise {
		port := s.listener.Addr().(*net.TCPAddr).Port
		ad, err := discovery.Advertise(s.config.Instance, port, discovery.TXTRecords("/", version.Version))
		if err != nil {
			// Serving still works without the announcement
			logging.Warn("mDNS advertisement failed", zap.Error(err))
		} else {
			s.ad = ad
		}
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		s.ad.Shutdown()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown withdraws the announcement and stops accepting requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.ad.Shutdown()

	s.httpServer.SetKeepAlivesEnabled(false)
	if err := s.httpServer.Shutdown(ctx); err != nil {
		logging.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	logging.Info("Sandbox directory stopped")
	return nil
}
