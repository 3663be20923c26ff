package domain

import (
	"time"
)

const (
	// HoursPerFTE is the number of weekly hours that make one full-time equivalent.
	HoursPerFTE = 32.0

	// DefaultWindowWeeks is the forward window used when none is requested.
	DefaultWindowWeeks = 12

	// WeekLabelLayout formats week columns for display (MM/DD/YYYY).
	WeekLabelLayout = "01/02/2006"
)

// WeekColumn is one hours column of an export. Date is only meaningful when
// Valid is true; invalid columns are excluded from every later step.
type WeekColumn struct {
	Index int       `json:"index"`
	Date  time.Time `json:"date"`
	Valid bool      `json:"valid"`
}

// LongRecord is one (resource, week, hours) cell of the export grid.
type LongRecord struct {
	ResourceName string    `json:"resource_name"`
	Week         time.Time `json:"week"`
	Hours        float64   `json:"hours"`
}

// ParsedExport is the normalized form of one hours export.
type ParsedExport struct {
	Records    []LongRecord `json:"records"`
	ReportDate time.Time    `json:"report_date"`
	Weeks      []WeekColumn `json:"weeks"`
}

// RosterEntry maps an employee or service name to a department.
type RosterEntry struct {
	Name       string     `json:"name"`
	Department Department `json:"department"`
}

// Roster is the pair of reference tables loaded from the definitions workbook.
type Roster struct {
	Employees []RosterEntry `json:"employees"`
	Services  []RosterEntry `json:"services"`
}

// AvailableHeadcount is the number of employees per canonical department.
type AvailableHeadcount map[Department]int

// Total sums the headcount of the given departments.
func (a AvailableHeadcount) Total(departments ...Department) int {
	total := 0
	for _, d := range departments {
		total += a[d]
	}
	return total
}

// WeeklyGapRow is the demand/availability gap of one department in one week.
type WeeklyGapRow struct {
	Department Department `json:"department"`
	Week       time.Time  `json:"week"`
	Demand     float64    `json:"demand"`
	Available  int        `json:"available"`
	Gap        float64    `json:"gap"`
}

// WeekLabel returns the row week formatted as MM/DD/YYYY.
func (r WeeklyGapRow) WeekLabel() string {
	return r.Week.Format(WeekLabelLayout)
}

// RosterSummary describes a loaded definitions workbook.
type RosterSummary struct {
	Employees int                `json:"employees"`
	Services  int                `json:"services"`
	Available AvailableHeadcount `json:"available"`
}

// RosterStatus describes the persisted definitions workbook.
type RosterStatus struct {
	Present    bool           `json:"present"`
	Path       string         `json:"path"`
	SizeBytes  int64          `json:"size_bytes,omitempty"`
	ModifiedAt *time.Time     `json:"modified_at,omitempty"`
	Summary    *RosterSummary `json:"summary,omitempty"`
}
