package health

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 10 * time.Second
)

// Server serves probe routes on its own listener.
type Server struct {
	server *http.Server
	ln     net.Listener
	errCh  chan error
}

// Start listens on addr and serves h in the background. Use ":0" or
// "127.0.0.1:0" to pick a free port and read it back with Addr.
func Start(addr string, h http.Handler, opts ...Option) (*Server, error) {
	cfg := newConfig(opts...)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Join(ErrServe, err)
	}

	s := &Server{
		server: &http.Server{
			Handler:           h,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
		},
		ln:    ln,
		errCh: make(chan error, 1),
	}

	go func() {
		cfg.logger.Info("probe server starting", slog.String("address", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.errCh <- errors.Join(ErrServe, err)
		}
		close(s.errCh)
	}()

	return s, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Shutdown stops accepting requests and waits for in-flight ones.
// It matches the lifecycle hook signature.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	return <-s.errCh
}
