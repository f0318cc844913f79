package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	apierrors "votecompare/internal/errors"
	"votecompare/pkg/contracts/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData feeds templates/index.html
type pageData struct {
	Title      string
	Candidates []domain.Candidate
}

// PageHandler serves the interactive chart page
type PageHandler struct {
	service      DatasetServiceInterface
	title        string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler creates a new page handler
func NewPageHandler(service DatasetServiceInterface, title string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PageHandler {
	return &PageHandler{
		service:      service,
		title:        title,
		logger:       logger.With(slog.String("handler", "page")),
		errorHandler: errorHandler,
	}
}

// ServeChart handles GET /
func (h *PageHandler) ServeChart(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.service.Candidates(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailable(err))
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Title: h.title, Candidates: candidates}); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render chart page", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}
