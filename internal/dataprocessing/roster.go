package dataprocessing

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	apperrors "staffgap/internal/errors"
	"staffgap/pkg/contracts/domain"
)

// RosterLoader reads the definitions workbook.
type RosterLoader struct {
	logger *slog.Logger
}

// NewRosterLoader creates a loader. A nil logger falls back to slog.Default.
func NewRosterLoader(logger *slog.Logger) *RosterLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterLoader{logger: logger.With(slog.String("component", "roster_loader"))}
}

// LoadFile loads the workbook stored at path.
func (l *RosterLoader) LoadFile(path string) (*domain.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open definitions workbook", err).WithContext("path", path)
	}
	defer f.Close()
	return l.Load(f)
}

// Load reads both reference sheets and keeps only the name and department
// columns. A missing sheet or column is fatal.
func (l *RosterLoader) Load(r io.Reader) (*domain.Roster, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read definitions workbook", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	for _, name := range []string{EmployeesSheet, ServicesSheet} {
		if !lo.Contains(sheets, name) {
			return nil, apperrors.NewMissingSheetError(name)
		}
	}

	employees, err := readRosterSheet(wb, EmployeesSheet, EmployeeNameColumn)
	if err != nil {
		return nil, err
	}
	services, err := readRosterSheet(wb, ServicesSheet, ServiceNameColumn)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("definitions loaded",
		slog.Int("employees", len(employees)),
		slog.Int("services", len(services)))

	return &domain.Roster{Employees: employees, Services: services}, nil
}

func readRosterSheet(wb *excelize.File, sheet, nameColumn string) ([]domain.RosterEntry, error) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet "+sheet, err)
	}

	var header []string
	if len(rows) > 0 {
		header = lo.Map(rows[0], func(h string, _ int) string { return strings.TrimSpace(h) })
	}

	nameIdx := lo.IndexOf(header, nameColumn)
	if nameIdx < 0 {
		return nil, apperrors.NewMissingColumnError(sheet, nameColumn)
	}
	deptIdx := lo.IndexOf(header, RosterDepartmentColumn)
	if deptIdx < 0 {
		return nil, apperrors.NewMissingColumnError(sheet, RosterDepartmentColumn)
	}

	entries := make([]domain.RosterEntry, 0, len(rows))
	for _, row := range rows[1:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		entries = append(entries, domain.RosterEntry{
			Name:       name,
			Department: domain.Department(cell(row, deptIdx)),
		})
	}
	return entries, nil
}

// SummarizeRoster reports entry counts and the available headcount.
func SummarizeRoster(r *domain.Roster) domain.RosterSummary {
	return domain.RosterSummary{
		Employees: len(r.Employees),
		Services:  len(r.Services),
		Available: CountAvailable(r.Employees),
	}
}
