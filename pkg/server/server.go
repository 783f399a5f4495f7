// Package server exposes the Sampler and Splitter as an HTTP service with an
// upload page, job status, progress streams and Prometheus metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/user/framegrid/pkg/orchestrator"
	"github.com/user/framegrid/pkg/ports"
	"github.com/user/framegrid/pkg/progress"
)

// SampleRunner runs the frame sampler.
type SampleRunner interface {
	Run(ctx context.Context, cfg orchestrator.SamplerConfig, ind *progress.Indicator) (orchestrator.SampleResult, error)
}

// SplitRunner runs the sheet splitter.
type SplitRunner interface {
	Run(ctx context.Context, cfg orchestrator.SplitterConfig, ind *progress.Indicator) (orchestrator.SplitResult, error)
}

// Config contains the service settings.
type Config struct {
	Addr           string
	Version        string
	MaxJobs        int   // concurrent runs, at least 1
	MaxUploadBytes int64 // 0 = unlimited
	AllowedOrigins []string

	// Per-run templates; input paths are filled in per job.
	Sampler  orchestrator.SamplerConfig
	Splitter orchestrator.SplitterConfig
}

// Deps are the collaborators of a Server.
type Deps struct {
	Sampler    SampleRunner
	Splitter   SplitRunner
	FileSystem ports.FileSystem
	Logger     ports.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg     Config
	deps    Deps
	logger  ports.Logger
	jobs    *JobStore
	metrics *Metrics
	slots   chan struct{}
	started time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a new Server.
func New(cfg Config, deps Deps) *Server {
	if cfg.MaxJobs < 1 {
		cfg.MaxJobs = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		cfg:     cfg,
		deps:    deps,
		logger:  deps.Logger.WithComponent("server"),
		jobs:    NewJobStore(),
		metrics: NewMetrics(),
		slots:   make(chan struct{}, cfg.MaxJobs),
		started: time.Now(),
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/jobs", func(r chi.Router) {
		r.Post("/sample", s.handleSubmit(KindSample))
		r.Post("/split", s.handleSubmit(KindSplit))
		r.Get("/{id}", s.handleStatus)
		r.Get("/{id}/events", s.handleEvents)
		r.Get("/{id}/result", s.handleResult)
	})

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
	})
	return c.Handler(r)
}

// ListenAndServe serves until ctx is cancelled, then drains running jobs.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	return err
}

// Close cancels running jobs and waits for them to finish.
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

// Wait blocks until every submitted job has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
	})
}
