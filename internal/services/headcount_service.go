package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"staffgap/internal/config"
	"staffgap/internal/dataprocessing"
	apperrors "staffgap/internal/errors"
	"staffgap/internal/infrastructure"
	"staffgap/pkg/contracts/domain"
)

// RosterSource provides the saved definitions workbook.
type RosterSource interface {
	Load(ctx context.Context) (*domain.Roster, error)
	Present() bool
}

// HeadcountRequest carries the uploads of one headcount run. Oppty is
// optional; Windows falls back to the configured windows when empty.
type HeadcountRequest struct {
	Active  io.Reader
	Oppty   io.Reader
	Windows []int
}

// HeadcountService turns hours exports and the saved roster into gap views
type HeadcountService struct {
	parser  *dataprocessing.ExportParser
	roster  RosterSource
	windows []int
	metrics *infrastructure.HeadcountMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewHeadcountService creates a new headcount service
func NewHeadcountService(parser *dataprocessing.ExportParser, roster RosterSource, windows []int, metrics *infrastructure.HeadcountMetrics, logger *slog.Logger) *HeadcountService {
	if logger == nil {
		logger = slog.Default()
	}
	if len(windows) == 0 {
		windows = []int{domain.DefaultWindowWeeks}
	}
	return &HeadcountService{
		parser:  parser,
		roster:  roster,
		windows: windows,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "headcount_service")),
		now:     time.Now,
	}
}

// Windows returns the windows used when a request names none.
func (s *HeadcountService) Windows() []int {
	return append([]int(nil), s.windows...)
}

// Run parses the exports, loads the roster and builds one active view per
// window, plus a combined view per window when an Oppty export is given.
// Nothing is returned on failure.
func (s *HeadcountService) Run(ctx context.Context, req HeadcountRequest) (*domain.HeadcountReport, error) {
	start := time.Now()
	runID := uuid.NewString()
	ctx = infrastructure.WithRunID(ctx, runID)
	ctx, span := infrastructure.StartSpan(ctx, "headcount.run",
		attribute.String("run_id", runID),
		attribute.Bool("oppty", req.Oppty != nil))
	defer span.End()

	logger := s.logger.With(slog.String("run_id", runID))

	scope := string(lo.Ternary(req.Oppty != nil, domain.ViewScopeCombined, domain.ViewScopeActive))

	report, records, err := s.run(ctx, req, runID)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordRun(ctx, scope, 0, 0, time.Since(start), err)
		logger.WarnContext(ctx, "headcount run failed", slog.String("error", err.Error()))
		return nil, err
	}

	gapRows := lo.SumBy(report.Views, func(v domain.GapView) int { return len(v.Rows) })
	s.metrics.RecordRun(ctx, scope, records, gapRows, time.Since(start), nil)
	logger.InfoContext(ctx, "headcount run completed",
		slog.Time("report_date", report.ReportDate),
		slog.Int("views", len(report.Views)),
		slog.Int("records", records),
		slog.Int("gap_rows", gapRows),
		slog.Duration("duration", time.Since(start)))

	return report, nil
}

func (s *HeadcountService) run(ctx context.Context, req HeadcountRequest, runID string) (*domain.HeadcountReport, int, error) {
	if req.Active == nil {
		return nil, 0, apperrors.NewAppValidationError("active jobs export is required")
	}
	windows, err := s.resolveWindows(req.Windows)
	if err != nil {
		return nil, 0, err
	}

	roster, err := s.roster.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	active, oppty, err := s.parseExports(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	// combined views share the active report date
	reportDate := active.ReportDate

	report := &domain.HeadcountReport{
		RunID:       runID,
		ReportDate:  reportDate,
		GeneratedAt: s.now().UTC(),
		Available:   dataprocessing.CountAvailable(roster.Employees),
	}

	for _, w := range windows {
		report.Views = append(report.Views, buildView(domain.ViewScopeActive, w, active.Records, *roster, reportDate))
	}
	if oppty != nil {
		combined := make([]domain.LongRecord, 0, len(active.Records)+len(oppty.Records))
		combined = append(append(combined, active.Records...), oppty.Records...)
		for _, w := range windows {
			report.Views = append(report.Views, buildView(domain.ViewScopeCombined, w, combined, *roster, reportDate))
		}
	}

	records := len(active.Records)
	if oppty != nil {
		records += len(oppty.Records)
	}
	return report, records, nil
}

// parseExports parses the Active and the optional Oppty export concurrently
func (s *HeadcountService) parseExports(ctx context.Context, req HeadcountRequest) (*domain.ParsedExport, *domain.ParsedExport, error) {
	var active, oppty *domain.ParsedExport

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		parsed, err := s.parseOne(gctx, "active", req.Active)
		active = parsed
		return err
	})
	if req.Oppty != nil {
		g.Go(func() error {
			parsed, err := s.parseOne(gctx, "oppty", req.Oppty)
			oppty = parsed
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return active, oppty, nil
}

func (s *HeadcountService) parseOne(ctx context.Context, scope string, r io.Reader) (*domain.ParsedExport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := infrastructure.StartSpan(ctx, "headcount.parse", attribute.String("export", scope))
	defer span.End()

	parsed, err := s.parser.Parse(r)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("export", scope)
		}
		return nil, fmt.Errorf("%s export: %w", scope, err)
	}
	s.metrics.RecordExportParsed(ctx, scope)
	return parsed, nil
}

func (s *HeadcountService) resolveWindows(requested []int) ([]int, error) {
	if len(requested) == 0 {
		return s.Windows(), nil
	}
	for _, w := range requested {
		if !config.IsAllowedWindow(w) {
			return nil, apperrors.NewAppValidationError(
				fmt.Sprintf("unsupported window %d, allowed: %v", w, config.AllowedWindows)).
				WithContext("window", w)
		}
	}
	return lo.Uniq(requested), nil
}

func buildView(scope domain.ViewScope, windowWeeks int, records []domain.LongRecord, roster domain.Roster, reportDate time.Time) domain.GapView {
	rows, _ := dataprocessing.BuildWeeklyHeadcount(records, roster, reportDate, windowWeeks)
	return domain.GapView{
		Scope:       scope,
		WindowWeeks: windowWeeks,
		Title:       ViewTitle(scope, windowWeeks),
		Rows:        rows,
		Matrix:      dataprocessing.PivotGap(rows, domain.DisplayOrder),
	}
}

// ViewTitle names a view for headings and sheet titles.
func ViewTitle(scope domain.ViewScope, windowWeeks int) string {
	if scope == domain.ViewScopeCombined {
		return fmt.Sprintf("Heat Map: Active + Oppty Combined, %d Weeks", windowWeeks)
	}
	return fmt.Sprintf("Heat Map: Active Jobs Only, %d Weeks", windowWeeks)
}
