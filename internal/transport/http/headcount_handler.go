package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"staffgap/internal/config"
	apperrors "staffgap/internal/errors"
	"staffgap/internal/exporter"
	"staffgap/internal/infrastructure"
	"staffgap/internal/middleware"
	"staffgap/internal/services"
	api "staffgap/pkg/contracts/api/v1"
	"staffgap/pkg/contracts/domain"
)

// HeadcountHandler runs the headcount pipeline over uploaded exports
type HeadcountHandler struct {
	service      HeadcountRunner
	renderer     ReportRenderer
	validator    *middleware.Validator
	metrics      *infrastructure.HeadcountMetrics
	maxUpload    int64
	logger       *slog.Logger
	errorHandler *apperrors.ErrorHandler
}

// NewHeadcountHandler creates a new headcount handler. maxUpload bounds
// each uploaded export; a request may carry two.
func NewHeadcountHandler(
	service HeadcountRunner,
	renderer ReportRenderer,
	validator *middleware.Validator,
	metrics *infrastructure.HeadcountMetrics,
	maxUpload int64,
	logger *slog.Logger,
	errorHandler *apperrors.ErrorHandler,
) *HeadcountHandler {
	return &HeadcountHandler{
		service:      service,
		renderer:     renderer,
		validator:    validator,
		metrics:      metrics,
		maxUpload:    maxUpload,
		logger:       logger.With(slog.String("handler", "headcount")),
		errorHandler: errorHandler,
	}
}

// Routes returns the headcount routes
func (h *HeadcountHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(render.SetContentType(render.ContentTypeJSON)).Get("/windows", h.GetWindows)
	r.With(render.SetContentType(render.ContentTypeJSON)).Post("/", h.Run)
	r.Post("/export", h.Export)

	return r
}

// GetWindows handles GET /api/headcount/windows
func (h *HeadcountHandler) GetWindows(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.WindowsResponse{
		Allowed:  config.AllowedWindows,
		Defaults: h.service.Windows(),
	})
}

// Run handles POST /api/headcount and responds with the report as JSON
func (h *HeadcountHandler) Run(w http.ResponseWriter, r *http.Request) {
	var query api.HeadcountRequest
	if err := h.bindQuery(r, &query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	report, err := h.runReport(w, r, query.Windows)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, report)
}

// Export handles POST /api/headcount/export?format=csv|xlsx|html and
// responds with the report file as an attachment.
func (h *HeadcountHandler) Export(w http.ResponseWriter, r *http.Request) {
	var query api.ExportRequest
	if err := h.bindQuery(r, &query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	format := domain.ReportFormat(query.Format)

	windows := query.Windows
	if query.Window != 0 && len(windows) == 0 {
		windows = []int{query.Window}
	}

	report, err := h.runReport(w, r, windows)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var view *domain.GapView
	if format == domain.ReportFormatCSV {
		v, ok := exporter.FindView(report, domain.ViewScope(query.Scope), query.Window)
		if !ok {
			h.errorHandler.HandleError(w, r, apperrors.NotFoundError(
				fmt.Sprintf("view %s/%dw", query.Scope, query.Window)))
			return
		}
		view = v
	}

	var buf bytes.Buffer
	if err := h.renderer.Export(&buf, report, format, view); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.metrics.RecordReportExported(r.Context(), string(format))

	name := exporter.FileName(report, format, view)
	w.Header().Set("Content-Type", exporter.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export", slog.String("error", err.Error()))
	}
}

// runReport reads the uploaded exports and runs the pipeline. A missing
// roster is reported as a conflict so clients know to upload one first.
func (h *HeadcountHandler) runReport(w http.ResponseWriter, r *http.Request, windows []int) (*domain.HeadcountReport, error) {
	if err := parseMultipart(w, r, 2*h.maxUpload); err != nil {
		return nil, err
	}
	defer r.MultipartForm.RemoveAll()

	active, err := formFile(r, api.FieldActive, true)
	if err != nil {
		return nil, err
	}
	defer active.Close()

	oppty, err := formFile(r, api.FieldOppty, false)
	if err != nil {
		return nil, err
	}

	req := services.HeadcountRequest{Active: active, Windows: windows}
	if oppty != nil {
		defer oppty.Close()
		req.Oppty = oppty
	}

	report, err := h.service.Run(r.Context(), req)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			return nil, apperrors.ErrRosterMissing
		}
		return nil, err
	}
	return report, nil
}

// bindQuery fills a query struct from the URL and validates it
func (h *HeadcountHandler) bindQuery(r *http.Request, dst interface{}) error {
	q := r.URL.Query()

	var base *api.HeadcountRequest
	switch v := dst.(type) {
	case *api.HeadcountRequest:
		base = v
	case *api.ExportRequest:
		base = &v.HeadcountRequest
		v.Format = q.Get("format")
		v.Scope = q.Get("scope")
		if raw := q.Get("window"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return apperrors.ErrValidation("window", "window must be a number of weeks")
			}
			v.Window = n
		}
	default:
		return fmt.Errorf("unsupported query type %T", dst)
	}

	windows, err := config.ParseWindows(q.Get("windows"))
	if err != nil {
		return apperrors.ErrValidation("windows", err.Error())
	}
	base.Windows = windows

	return h.validator.ValidateStruct(dst)
}
