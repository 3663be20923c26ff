package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"time"

	apperrors "staffgap/internal/errors"
	"staffgap/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportParser turns resource-hours exports into long-form records.
type ExportParser struct {
	logger *slog.Logger
	now    func() time.Time
}

// ExportParserOption configures an ExportParser.
type ExportParserOption func(*ExportParser)

// WithClock replaces the clock used for the report-date fallback.
func WithClock(now func() time.Time) ExportParserOption {
	return func(p *ExportParser) { p.now = now }
}

// NewExportParser creates a parser. A nil logger falls back to slog.Default.
func NewExportParser(logger *slog.Logger, opts ...ExportParserOption) *ExportParser {
	if logger == nil {
		logger = slog.Default()
	}
	p := &ExportParser{
		logger: logger.With(slog.String("component", "export_parser")),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses the export stored at path.
func (p *ExportParser) ParseFile(path string) (*domain.ParsedExport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open export", err).WithContext("path", path)
	}
	defer f.Close()
	return p.Parse(f)
}

// Parse reads one export. A body narrower than its week header fails with a
// SHAPE_MISMATCH error and no partial result.
func (p *ExportParser) Parse(r io.Reader) (*domain.ParsedExport, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("export contains no records", nil)
	}

	reportDate := ExtractReportDate(records[:min(HeaderBlockRows, len(records))], p.now())
	weeks := ExtractWeekColumns(recordAt(records, MonthRow), recordAt(records, DayRow))

	var body [][]string
	if len(records) > BodyStartRow {
		body = records[BodyStartRow:]
		if err := checkShape(records[BodyHeaderRow:], weeks); err != nil {
			return nil, err
		}
	}

	longRecords := Melt(body, weeks)

	invalid := 0
	for _, w := range weeks {
		if !w.Valid {
			invalid++
		}
	}
	p.logger.Debug("export parsed",
		slog.String("report_date", reportDate.Format(time.DateOnly)),
		slog.Int("week_columns", len(weeks)),
		slog.Int("invalid_week_columns", invalid),
		slog.Int("resources", len(body)),
		slog.Int("records", len(longRecords)))

	return &domain.ParsedExport{
		Records:    longRecords,
		ReportDate: reportDate,
		Weeks:      weeks,
	}, nil
}

func readRecords(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("malformed export CSV", err)
	}
	return records, nil
}

// checkShape compares the widest body record, titles included, against the
// last valid week column.
func checkShape(body [][]string, weeks []domain.WeekColumn) error {
	last := -1
	for _, w := range weeks {
		if w.Valid {
			last = w.Index
		}
	}
	if last < 0 {
		return nil
	}

	width := 0
	for _, rec := range body {
		width = max(width, len(rec))
	}

	if need := WeekColumnOffset + last + 1; width < need {
		return apperrors.NewShapeMismatchError(need, width)
	}
	return nil
}

func recordAt(records [][]string, i int) []string {
	if i < len(records) {
		return records[i]
	}
	return nil
}
