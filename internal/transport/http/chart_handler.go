package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"votecompare/internal/chart"
	apierrors "votecompare/internal/errors"
	"votecompare/internal/exporter"
	"votecompare/internal/services"
)

// SelectionParam is the query parameter carrying the candidate selection
const SelectionParam = "candidates"

// ChartHandler serves the dataset API with RFC 7807 errors
type ChartHandler struct {
	service      DatasetServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service DatasetServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dataset routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/candidates", h.GetCandidates)
		r.Get("/chart", h.GetChart)
		r.Get("/records", h.GetRecords)
		r.Post("/dataset/reload", h.ReloadDataset)
	})

	r.Get("/export.csv", h.ExportCSV)
	r.Get("/export.xlsx", h.ExportXLSX)

	return r
}

// GetCandidates handles GET /api/candidates
func (h *ChartHandler) GetCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.service.Candidates(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   candidates,
		"count":  len(candidates),
	})
}

// GetChart handles GET /api/chart
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	selected := selection(r)

	payload, err := h.service.Chart(r.Context(), selected)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, payload)
}

// GetRecords handles GET /api/records
func (h *ChartHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	selected := selection(r)

	records, err := h.service.Records(r.Context(), selected)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   records,
		"count":  len(records),
	})
}

// ExportCSV handles GET /api/export.csv
func (h *ChartHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	selected := selection(r)

	records, err := h.service.Records(r.Context(), selected)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="combined_votes.csv"`)
	if err := exporter.EncodeRecords(w, records); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream csv export",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// ExportXLSX handles GET /api/export.xlsx
func (h *ChartHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	selected := selection(r)

	records, err := h.service.Records(r.Context(), selected)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="combined_votes.xlsx"`)
	if err := exporter.EncodeWorkbook(w, records); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to stream xlsx export",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	}
}

// ReloadDataset handles POST /api/dataset/reload
func (h *ChartHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	h.logger.InfoContext(r.Context(), "reloading dataset", slog.String("request_id", reqID))

	ds, err := h.service.Reload(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dataset reload failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID))
		h.errorHandler.HandleError(w, r, apierrors.ReloadFailed(err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status":        "success",
		"dataset_id":    ds.ID.String(),
		"loaded_at":     ds.LoadedAt,
		"neighborhoods": len(ds.Domain),
		"rows":          len(ds.Records),
	})
}

// selection reads the candidates parameter. An absent parameter yields nil,
// which the service resolves to every candidate of the dataset it serves.
func selection(r *http.Request) []string {
	raw, present := r.URL.Query()[SelectionParam]
	if !present {
		return nil
	}
	return chart.ParseSelection(raw, true, nil)
}

// handleServiceError maps service errors to API errors
func (h *ChartHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var unknown *services.UnknownCandidatesError
	switch {
	case errors.Is(err, services.ErrNoDataset):
		h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailable(err))
	case errors.As(err, &unknown):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(SelectionParam, unknown.Error()))
	default:
		h.logger.ErrorContext(r.Context(), "dataset request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetReqID(r.Context())))
		h.errorHandler.HandleError(w, r, err)
	}
}
