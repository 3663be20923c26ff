package exporter

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/samber/lo"

	"staffgap/internal/config"
	"staffgap/internal/files"
	"staffgap/pkg/contracts/domain"
)

// Formats lists every supported report format in export order.
var Formats = []domain.ReportFormat{
	domain.ReportFormatCSV,
	domain.ReportFormatExcel,
	domain.ReportFormatHTML,
}

// ParseFormat validates a format name; "all" expands to every format.
func ParseFormat(name string) ([]domain.ReportFormat, error) {
	if name == "all" {
		return Formats, nil
	}
	f := domain.ReportFormat(name)
	if !lo.Contains(Formats, f) {
		return nil, fmt.Errorf("unsupported report format %q", name)
	}
	return []domain.ReportFormat{f}, nil
}

// FindView returns the view with the given scope and window. An empty scope
// or a zero window matches any view.
func FindView(report *domain.HeadcountReport, scope domain.ViewScope, windowWeeks int) (*domain.GapView, bool) {
	view, ok := lo.Find(report.Views, func(v domain.GapView) bool {
		return (scope == "" || v.Scope == scope) && (windowWeeks == 0 || v.WindowWeeks == windowWeeks)
	})
	if !ok {
		return nil, false
	}
	return &view, true
}

// ReportExporter writes headcount reports as CSV, XLSX or HTML.
type ReportExporter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewReportExporter creates a report exporter writing into the reports directory
func NewReportExporter(paths *config.Paths, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		paths:  paths,
		logger: logger.With(slog.String("component", "report_exporter")),
	}
}

// Export streams one format of the report to w. CSV carries a single view,
// the first one unless view is given; XLSX carries every view and the
// legend; HTML is the availability legend.
func (e *ReportExporter) Export(w io.Writer, report *domain.HeadcountReport, format domain.ReportFormat, view *domain.GapView) error {
	switch format {
	case domain.ReportFormatCSV:
		if view == nil {
			if len(report.Views) == 0 {
				return WriteGapCSV(w, nil)
			}
			view = &report.Views[0]
		}
		return WriteGapCSV(w, view.Rows)
	case domain.ReportFormatExcel:
		return WriteWorkbook(w, report)
	case domain.ReportFormatHTML:
		return WriteLegendHTML(w, report.Available)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// FileName returns the download name of a single-format export.
func FileName(report *domain.HeadcountReport, format domain.ReportFormat, view *domain.GapView) string {
	if format == domain.ReportFormatCSV && view != nil {
		return config.GetReportFileName(string(view.Scope), view.WindowWeeks, report.ReportDate, string(format))
	}
	return fmt.Sprintf("headcount_report_%s.%s", report.ReportDate.Format("20060102"), format)
}

// SaveAll writes the report into the reports directory in each format and
// returns the written paths. CSV produces a long table and a matrix per view.
func (e *ReportExporter) SaveAll(report *domain.HeadcountReport, formats []domain.ReportFormat) ([]string, error) {
	var written []string

	save := func(name string, render func(io.Writer) error) error {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return err
		}
		path := e.paths.GetReportPath(name)
		if err := files.WriteFileAtomic(path, buf.Bytes()); err != nil {
			return err
		}
		written = append(written, path)
		e.logger.Info("report written",
			slog.String("file", filepath.Base(path)),
			slog.Int("bytes", buf.Len()))
		return nil
	}

	for _, format := range lo.Uniq(formats) {
		switch format {
		case domain.ReportFormatCSV:
			for _, v := range report.Views {
				view := v
				name := config.GetReportFileName(string(view.Scope), view.WindowWeeks, report.ReportDate, "csv")
				if err := save(name, func(w io.Writer) error { return WriteGapCSV(w, view.Rows) }); err != nil {
					return written, err
				}
				name = config.GetReportFileName(string(view.Scope)+"_matrix", view.WindowWeeks, report.ReportDate, "csv")
				if err := save(name, func(w io.Writer) error { return WriteMatrixCSV(w, view.Matrix) }); err != nil {
					return written, err
				}
			}
		case domain.ReportFormatExcel, domain.ReportFormatHTML:
			if err := save(FileName(report, format, nil), func(w io.Writer) error {
				return e.Export(w, report, format, nil)
			}); err != nil {
				return written, err
			}
		default:
			return written, fmt.Errorf("unsupported report format %q", format)
		}
	}

	return written, nil
}
