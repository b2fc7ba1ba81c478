// SPDX-License-Identifier: MIT

// Package server exposes an engine.Session over HTTP: a small JSON control
// API and a websocket stream of frames for a browser renderer.
//
// Routes:
//
//	GET  /api/graph               graph document (JSON; ?format=yaml for YAML)
//	PUT  /api/graph               replace the graph (JSON or YAML body)
//	GET  /api/presets             preset names
//	POST /api/presets/{name}      load a preset
//	PUT  /api/selection           {"source": "A", "target": "D"}
//	POST /api/run                 run Floyd–Warshall on the current graph
//	POST /api/playback/{action}   play, pause, reset, end, forward, back
//	POST /api/playback/seek       ?index=N
//	PUT  /api/playback/speed      ?value=N (1..100)
//	GET  /api/frame               current frame
//	GET  /ws                      frame stream
package server

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"github.com/katalvlaran/fwviz/config"
	"github.com/katalvlaran/fwviz/engine"
)

const shutdownTimeout = 5 * time.Second

// Server serves one Session.
type Server struct {
	sess     *engine.Session
	log      *slog.Logger
	cfg      config.ServerConfig
	upgrader websocket.Upgrader
	handler  http.Handler

	closeOnce sync.Once
	closing   chan struct{} // closed on shutdown; ends websocket streams
}

// New builds the handler tree for sess. A nil logger discards output.
func New(sess *engine.Session, cfg config.ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		sess:    sess,
		log:     log,
		cfg:     cfg,
		closing: make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.originAllowed,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/graph", s.getGraph)
	mux.HandleFunc("PUT /api/graph", s.putGraph)
	mux.HandleFunc("GET /api/presets", s.listPresets)
	mux.HandleFunc("POST /api/presets/{name}", s.loadPreset)
	mux.HandleFunc("PUT /api/selection", s.putSelection)
	mux.HandleFunc("POST /api/run", s.run)
	mux.HandleFunc("POST /api/playback/seek", s.seek)
	mux.HandleFunc("PUT /api/playback/speed", s.speed)
	mux.HandleFunc("POST /api/playback/{action}", s.playback)
	mux.HandleFunc("GET /api/frame", s.frame)
	mux.HandleFunc("GET /ws", s.stream)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(s.logRequests(mux))

	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.log.Info("http listening", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		s.shutdownStreams()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.shutdownStreams()
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	s.log.Info("http stopped")

	return nil
}

func (s *Server) shutdownStreams() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}

	return false
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }

// Hijack hands the connection to the websocket upgrader.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("server: connection does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols

	return h.Hijack()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start),
		)
	})
}
