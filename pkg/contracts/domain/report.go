package domain

import (
	"time"
)

// ViewScope identifies which exports contributed to a gap view.
type ViewScope string

const (
	// ViewScopeActive covers active jobs only.
	ViewScopeActive ViewScope = "active"
	// ViewScopeCombined covers active jobs plus opportunities.
	ViewScopeCombined ViewScope = "combined"
)

// ReportFormat defines the format of an exported report
type ReportFormat string

const (
	ReportFormatCSV   ReportFormat = "csv"
	ReportFormatExcel ReportFormat = "xlsx"
	ReportFormatHTML  ReportFormat = "html"
)

// GapMatrix is the Department x Week pivot of gap values. Cells[i][j] is nil
// when department i has no demand in week j.
type GapMatrix struct {
	Departments []Department `json:"departments"`
	Weeks       []time.Time  `json:"weeks"`
	WeekLabels  []string     `json:"week_labels"`
	Cells       [][]*float64 `json:"cells"`
}

// Empty reports whether the matrix holds no values at all.
func (m GapMatrix) Empty() bool {
	for _, row := range m.Cells {
		for _, c := range row {
			if c != nil {
				return false
			}
		}
	}
	return true
}

// GapView is one windowed gap table together with its pivot.
type GapView struct {
	Scope       ViewScope      `json:"scope"`
	WindowWeeks int            `json:"window_weeks"`
	Title       string         `json:"title"`
	Rows        []WeeklyGapRow `json:"rows"`
	Matrix      GapMatrix      `json:"matrix"`
}

// HeadcountReport is the full result of one headcount run.
type HeadcountReport struct {
	RunID       string             `json:"run_id"`
	ReportDate  time.Time          `json:"report_date"`
	GeneratedAt time.Time          `json:"generated_at"`
	Available   AvailableHeadcount `json:"available"`
	Views       []GapView          `json:"views"`
}
