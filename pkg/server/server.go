// Package server exposes a single clipboard over HTTP.
//
// All access to the clipboard goes through one mutex that is held only for
// the duration of a single Read or Write call. Request bodies are received
// and responses are sent outside the lock, so a slow peer never blocks
// other requests.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"sync"
	"time"

	"limeade/pkg/clipboard"
	"limeade/pkg/errors"
	"limeade/pkg/logger"
	"limeade/pkg/transport"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAddr binds all interfaces on the limeade port.
	DefaultAddr = "0.0.0.0:" + transport.DefaultPort

	shutdownTimeout = 5 * time.Second
)

// Server owns one clipboard resource for its whole lifetime.
type Server struct {
	Addr string
	Mux  *http.ServeMux

	mu   sync.Mutex
	clip clipboard.Resource
}

// New creates a Server serving clip on addr and registers its routes.
func New(addr string, clip clipboard.Resource) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{
		Addr: addr,
		Mux:  http.NewServeMux(),
		clip: clip,
	}
	s.Routes()
	return s
}

// Routes registers the clipboard handlers on the server mux. Other methods
// on /clipboard get 405 from the mux, unknown paths get 404.
func (s *Server) Routes() {
	s.Mux.HandleFunc("POST "+transport.ClipboardPath, s.handleCopy)
	s.Mux.HandleFunc("GET "+transport.ClipboardPath, s.handlePaste)
}

// Handler returns the mux wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return withRequestLog(s.Mux)
}

// Copy replaces the clipboard contents with data.
func (s *Server) Copy(data []byte) error {
	s.mu.Lock()
	err := s.clip.Write(data)
	s.mu.Unlock()
	return resourceError(err)
}

// Paste returns the current clipboard contents.
func (s *Server) Paste() ([]byte, error) {
	s.mu.Lock()
	data, err := s.clip.Read()
	s.mu.Unlock()
	if err != nil {
		return nil, resourceError(err)
	}
	return data, nil
}

// Run listens on s.Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeTransport, "failed to listen on "+s.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("clipboard server listening")
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.NewWithError(errors.ExitCodeTransport, "serve failed", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info().Msg("shutting down clipboard server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func resourceError(err error) error {
	switch {
	case err == nil:
		return nil
	case clipboard.IsBusy(err):
		return errors.BusyError(err)
	default:
		return errors.AccessError(err)
	}
}
