// Package web serves the learning games over HTTP: a small JSON API for game
// and content discovery plus a websocket channel that plays a game session
// for browser clients that render the picture themselves.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/learn-arcade/internal/storage"
)

// Config configures the HTTP server.
type Config struct {
	Addr string
	// TickRate is the simulation rate of websocket play sessions.
	TickRate int
}

// Server is the HTTP front end.
type Server struct {
	srv    *http.Server
	logger *log.Logger
	// quit is closed on shutdown; hijacked play sessions watch it since
	// http.Server.Shutdown does not wait for them.
	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a server. store may be nil, in which case health reports the
// library as disabled and content uploads are refused.
func New(cfg Config, logger *log.Logger, store *storage.Store) *Server {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 10
	}

	s := &Server{logger: logger, quit: make(chan struct{})}
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(logger, store, cfg.TickRate, s.quit),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.srv.RegisterOnShutdown(func() {
		s.quitOnce.Do(func() { close(s.quit) })
	})
	return s
}

// NewRouter builds the chi router with middleware and all routes. Play
// sessions end when quit is closed; a nil quit never fires.
func NewRouter(logger *log.Logger, store *storage.Store, tickRate int, quit <-chan struct{}) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)

	addRoutes(r, logger, store, tickRate, quit)
	return r
}

// Run listens and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}
	s.logger.Info("starting HTTP server", "address", ln.Addr().String())

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			s.logger.Error("http shutdown", "error", err)
		}
	}()

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

func newStructuredLogger(logger *log.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
