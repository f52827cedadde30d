// Package ui runs the local HTTP listener that serves the balance page.
package ui

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

type Config struct {
	Addr    string
	Handler http.Handler
}

type Service struct {
	cfg Config
	srv *http.Server
	ln  net.Listener
}

func NewService(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:6140"
	}
	return &Service{cfg: cfg}
}

// Start binds the address and serves in the background. Bind errors are
// returned directly.
func (s *Service) Start() error {
	if s.cfg.Handler == nil {
		return errors.New("ui: nil handler")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", s.cfg.Addr)
	}
	s.ln = ln

	s.srv = &http.Server{
		Handler:           s.cfg.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", "error", err)
		}
	}()

	return nil
}

func (s *Service) URL() string {
	if s.ln == nil {
		return ""
	}
	return fmt.Sprintf("http://%s", s.ln.Addr().String())
}

func (s *Service) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
