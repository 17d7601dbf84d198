// Package httpapi is the thin request surface: it decodes, delegates, and
// encodes. Verification and persistence logic live behind the interfaces it
// consumes.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"licensure/internal/job"
	"licensure/internal/license"
	"licensure/pkg/platform/httputil"
	"licensure/pkg/requestcontext"
)

// RunService executes a verification batch.
type RunService interface {
	Run(ctx context.Context, providers []string) (job.Summary, error)
}

type Handler struct {
	runner RunService
	store  license.Store
	logger *slog.Logger
}

func NewHandler(runner RunService, store license.Store, logger *slog.Logger) *Handler {
	return &Handler{runner: runner, store: store, logger: logger}
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Get("/healthz", h.handleHealthz)
	r.Post("/run", h.handleRun)
	r.Get("/licenses", h.handleLicenses)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type runRequest struct {
	Providers []string `json:"providers"`
}

type runResponse struct {
	OK      bool        `json:"ok"`
	Summary job.Summary `json:"summary"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Providers) == 0 {
		httputil.WriteError(w, http.StatusBadRequest, "providers is required")
		return
	}

	start := time.Now()
	summary, err := h.runner.Run(ctx, req.Providers)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification run failed",
			"request_id", requestcontext.RequestID(ctx),
			"providers", len(req.Providers),
			"error", err,
		)
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.InfoContext(ctx, "verification run served",
		"request_id", requestcontext.RequestID(ctx),
		"providers", len(req.Providers),
		"processed", summary.Processed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, runResponse{OK: true, Summary: summary})
}

type listResponse struct {
	Items []licenseItem `json:"items"`
}

func (h *Handler) handleLicenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := license.Filter{
		Provider: r.URL.Query().Get("provider"),
		State:    r.URL.Query().Get("state"),
	}

	records, err := h.store.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "license listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	items := make([]licenseItem, 0, len(records))
	for _, record := range records {
		items = append(items, toItem(record))
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Items: items})
}
