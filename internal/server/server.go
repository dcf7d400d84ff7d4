// Package server exposes the solvers over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/san-kum/beamlab/internal/storage"
	"golang.org/x/time/rate"
)

type Options struct {
	Logger *slog.Logger
	// Store enables saving solves and the /api/runs endpoints. May be nil.
	Store *storage.Store
	// Rate and Burst configure the per-client limiter. Zero Rate disables it.
	Rate  rate.Limit
	Burst int
}

type Server struct {
	log    *slog.Logger
	store  *storage.Store
	router *mux.Router
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{log: log, store: opts.Store, router: mux.NewRouter()}

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.logRequests)
	if opts.Rate > 0 {
		api.Use(NewIPRateLimiter(opts.Rate, max(opts.Burst, 1)).LimitMiddleware)
	}

	api.HandleFunc("/models", s.handleModels).Methods("GET")
	api.HandleFunc("/solve", s.handleSolve).Methods("POST")
	api.HandleFunc("/report/{format:pdf|svg}", s.handleReport).Methods("POST")
	api.HandleFunc("/presets", s.handlePresets).Methods("GET")
	api.HandleFunc("/presets/{name}", s.handlePreset).Methods("GET")
	api.HandleFunc("/runs", s.handleRuns).Methods("GET")
	api.HandleFunc("/runs/{id}", s.handleRun).Methods("GET")

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(start))
	})
}

// ListenAndServe runs until ctx is cancelled, then drains connections for
// up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
