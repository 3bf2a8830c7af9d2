// Package server exposes timeline builds over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/introspection"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/timeline/pkg/annotate"
	"github.com/aretw0/timeline/pkg/core"
	"github.com/aretw0/timeline/pkg/pipeline"
	"github.com/aretw0/timeline/pkg/render"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Config wires the HTTP surface.
type Config struct {
	Service  *pipeline.Service
	Logger   *slog.Logger
	Registry *prometheus.Registry
	// Components are reported by /state, keyed by component type.
	Components []introspection.Introspectable
}

type handlers struct {
	svc        *pipeline.Service
	logger     *slog.Logger
	metrics    *Metrics
	components []introspection.Introspectable
}

// NewRouter builds the chi router. A nil Registry gets a private one.
func NewRouter(cfg Config) (*chi.Mux, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	metrics, err := NewMetrics("timeline", cfg.Registry)
	if err != nil {
		return nil, err
	}

	h := &handlers{
		svc:        cfg.Service,
		logger:     cfg.Logger,
		metrics:    metrics,
		components: cfg.Components,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(loggingMiddleware(cfg.Logger))

	r.Get("/healthz", h.health)
	r.Get("/state", h.state)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.SetHeader("Content-Type", "application/json"))
		r.Get("/timeline/*", h.timeline)
		r.Get("/dates/*", h.dates)
	})

	return r, nil
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]any, len(h.components))
	for _, c := range h.components {
		name := "component"
		if comp, ok := c.(introspection.Component); ok {
			name = comp.ComponentType()
		}
		out[name] = c.State()
	}
	writeJSON(w, http.StatusOK, out)
}

// timeline builds the document at the wildcard path. The sort and reference query
// parameters act like directives and override the document's own block.
func (h *handlers) timeline(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "*")

	overrides := annotate.Directives{}
	q := r.URL.Query()
	if v := q.Get(annotate.DirectiveSort); v != "" {
		if _, err := core.ParseSortOrder(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "invalid_sort")
			return
		}
		overrides[annotate.DirectiveSort] = v
	}
	if v := q.Get(annotate.DirectiveReference); v != "" {
		overrides[annotate.DirectiveReference] = v
	}

	res, err := h.svc.BuildWith(r.Context(), id, nil, overrides)
	switch {
	case err != nil:
		h.metrics.record("timeline", outcomeError, time.Since(start), 0)
		h.logger.Error("build failed", "document", id, "error", err)
		writeError(w, http.StatusInternalServerError, "build failed", "build_failed")
		return
	case res == nil:
		h.metrics.record("timeline", outcomeNotFound, time.Since(start), 0)
		writeError(w, http.StatusNotFound, "no eligible document: "+id, "not_found")
		return
	}
	h.metrics.record("timeline", outcomeOK, time.Since(start), res.Timeline.Len())

	if strings.EqualFold(q.Get("format"), "text") {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = render.Text(w, res.Timeline)
		return
	}
	writeJSON(w, http.StatusOK, render.NewResultJSON(res))
}

func (h *handlers) dates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "*")

	list, err := h.svc.Dates(r.Context(), id)
	switch {
	case err != nil:
		h.metrics.record("dates", outcomeError, time.Since(start), 0)
		h.logger.Error("date listing failed", "document", id, "error", err)
		writeError(w, http.StatusInternalServerError, "date listing failed", "build_failed")
		return
	case list == nil:
		h.metrics.record("dates", outcomeNotFound, time.Since(start), 0)
		writeError(w, http.StatusNotFound, "no eligible document: "+id, "not_found")
		return
	}
	h.metrics.record("dates", outcomeOK, time.Since(start), 0)
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// loggingMiddleware logs every request through slog.
func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
			)
		})
	}
}
