package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/simplejavamail/rfcpicker/internal/config"
	"github.com/simplejavamail/rfcpicker/internal/dependency"
	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/picker"
	"github.com/simplejavamail/rfcpicker/internal/render"
	"github.com/simplejavamail/rfcpicker/internal/store"
)

// Server serves the picker page and its JSON API.
type Server struct {
	cfg    config.Server
	deps   *dependency.Service
	events store.EventRepo
	logger *zap.Logger
	mux    *http.ServeMux
}

// New creates a Server. events may be nil to disable history.
func New(cfg config.Server, deps *dependency.Service, events store.EventRepo, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		deps:   deps,
		events: events,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handlePage)
	s.mux.HandleFunc("GET /api/structure", s.handleStructure)
	s.mux.HandleFunc("GET /api/dependency", s.handleDependency)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	return s
}

// Handler returns the root handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// Run listens on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("address", s.cfg.ListenAddress))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	choices := picker.FromLookup(r.URL.Query().Has)
	res, ok := s.classify(w, r, choices)
	if !ok {
		return
	}

	list, err := render.HTML(res)
	if err != nil {
		s.fail(w, "render structure", err)
		return
	}

	dep := s.deps.Cached(r.Context())
	data := pageData{
		Label:     res.Structure.Label(),
		Structure: list,
		Snippet:   dep.Snippet(),
		Source:    string(dep.Source),
	}
	for _, o := range picker.Options() {
		data.Options = append(data.Options, checkbox{
			Key:      o.Key(),
			Label:    o.Label(),
			Checked:  choices.Get(o),
			Disabled: !choices.Enabled(o),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("write page", zap.Error(err))
	}
}

func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	choices := picker.FromLookup(r.URL.Query().Has)
	res, ok := s.classify(w, r, choices)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, render.NewDocument(res))
}

type dependencyResponse struct {
	GroupID    string     `json:"group_id"`
	ArtifactID string     `json:"artifact_id"`
	Version    string     `json:"version,omitempty"`
	Source     string     `json:"source"`
	FetchedAt  *time.Time `json:"fetched_at,omitempty"`
	Snippet    string     `json:"snippet"`
	Error      string     `json:"error,omitempty"`
}

func (s *Server) handleDependency(w http.ResponseWriter, r *http.Request) {
	res := s.deps.Resolve(r.Context())
	body := dependencyResponse{
		GroupID:    res.GroupID,
		ArtifactID: res.ArtifactID,
		Version:    res.Version,
		Source:     string(res.Source),
		Snippet:    res.Snippet(),
	}
	if !res.FetchedAt.IsZero() {
		body.FetchedAt = &res.FetchedAt
	}
	if res.Err != nil {
		body.Error = res.Err.Error()
	}

	status := http.StatusOK
	if res.Source == dependency.SourceNone {
		status = http.StatusBadGateway
	}
	writeJSON(w, status, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// classify determines the structure and records it in the history.
func (s *Server) classify(w http.ResponseWriter, r *http.Request, c picker.Choices) (mimestruct.Result, bool) {
	f := c.Features()
	res, err := mimestruct.Determine(f)
	if err != nil {
		s.fail(w, "classify", err)
		return mimestruct.Result{}, false
	}

	if s.events != nil {
		_, err := s.events.Append(r.Context(), store.Event{
			Features:  f,
			Structure: res.Structure,
			Source:    store.SourceHTTP,
		})
		if err != nil {
			s.logger.Warn("record classification", zap.Error(err))
		}
	}
	return res, true
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
