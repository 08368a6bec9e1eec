// Package server exposes host snapshots and their history over HTTP.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/net/netutil"

	"toolbox/internal/metrics"
	"toolbox/internal/store"
	"toolbox/internal/sysinfo"
)

// History is the read side of the snapshot store.
type History interface {
	List(limit int) ([]store.Record, error)
	Get(id uint64) (*store.Record, error)
}

// Options configures the handler.
type Options struct {
	Source         sysinfo.Source
	History        History // nil disables the /history routes
	SampleInterval time.Duration
	AuthUser       string
	AuthBcrypt     string // bcrypt hash of the password; empty disables auth
	Version        string
	Log            zerolog.Logger
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	opts Options
}

// NewHandler builds the router.
func NewHandler(opts Options) http.Handler {
	s := &Server{opts: opts}

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(opts.Source, opts.SampleInterval, opts.Log))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)

	r.Group(func(r chi.Router) {
		if opts.AuthBcrypt != "" {
			r.Use(s.basicAuth)
		}
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		r.Get("/snapshot", s.snapshot)
		if opts.History != nil {
			r.Get("/history", s.listHistory)
			r.Get("/history/{id}", s.getHistory)
		}
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.opts.Version})
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := sysinfo.Collect(r.Context(), s.opts.Source, sysinfo.Options{
		SampleInterval: s.opts.SampleInterval,
		Log:            s.opts.Log,
	})
	if err != nil {
		s.opts.Log.Error().Err(err).Msg("Snapshot collection failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", v))
			return
		}
		limit = n
	}

	records, err := s.opts.History.List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	record, err := s.opts.History.Get(id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, record)
	}
}

func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if ok &&
			subtle.ConstantTimeCompare([]byte(user), []byte(s.opts.AuthUser)) == 1 &&
			bcrypt.CompareHashAndPassword([]byte(s.opts.AuthBcrypt), []byte(pass)) == nil {
			next.ServeHTTP(w, r)
			return
		}

		s.opts.Log.Warn().
			Str("remote", r.RemoteAddr).
			Str("path", r.URL.Path).
			Msg("Rejected unauthenticated request")
		w.Header().Set("WWW-Authenticate", `Basic realm="toolbox"`)
		writeError(w, http.StatusUnauthorized, "unauthorized")
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.opts.Log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("Request served")
	})
}

// ListenAndServe serves h on addr until ctx is cancelled. See Serve.
func ListenAndServe(ctx context.Context, addr string, maxConns int, h http.Handler, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return Serve(ctx, ln, maxConns, h, log)
}

// Serve serves h on ln with at most maxConns concurrent connections until
// ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, ln net.Listener, maxConns int, h http.Handler, log zerolog.Logger) error {
	if maxConns > 0 {
		ln = netutil.LimitListener(ln, maxConns)
	}

	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", ln.Addr().String()).
		Int("max_connections", maxConns).
		Msg("HTTP server started")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Graceful shutdown did not complete, closing")
			return srv.Close()
		}
		log.Info().Msg("HTTP server stopped")
		return nil
	}
}
