package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "staffgap/internal/errors"
	api "staffgap/pkg/contracts/api/v1"
)

// RosterHandler handles uploads of the employee and service definitions
type RosterHandler struct {
	service      RosterManager
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(service RosterManager, maxUpload int64, logger *slog.Logger, errorHandler *apperrors.ErrorHandler) *RosterHandler {
	return &RosterHandler{
		service:      service,
		maxUpload:    maxUpload,
		logger:       logger.With(slog.String("handler", "roster")),
		errorHandler: errorHandler,
	}
}

// Routes returns the roster routes
func (h *RosterHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetStatus)
	r.Put("/", h.Upload)
	r.Delete("/", h.Clear)

	return r
}

// GetStatus handles GET /api/roster
func (h *RosterHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, status)
}

// Upload handles PUT /api/roster with the workbook in the "definitions" field.
// The previous workbook is kept when the upload fails validation.
func (h *RosterHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxUpload); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	data, err := readFormFile(r, api.FieldDefinitions)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Upload(r.Context(), data)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "definitions uploaded",
		slog.Int("size_bytes", len(data)),
		slog.Int("employees", summary.Employees))
	render.JSON(w, r, summary)
}

// Clear handles DELETE /api/roster
func (h *RosterHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
