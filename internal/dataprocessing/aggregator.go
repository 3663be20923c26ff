package dataprocessing

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"staffgap/pkg/contracts/domain"
)

// BuildMapping builds the name to department lookup in two phases:
// employees first, then services. A later entry overwrites an earlier one
// with the same name, within and across the two sheets.
func BuildMapping(r domain.Roster) map[string]domain.Department {
	mapping := make(map[string]domain.Department, len(r.Employees)+len(r.Services))
	for _, e := range r.Employees {
		mapping[e.Name] = e.Department
	}
	for _, s := range r.Services {
		mapping[s.Name] = s.Department
	}
	return mapping
}

// CountAvailable counts employees per canonical department. Every
// canonical department is present, with 0 when nobody belongs to it.
func CountAvailable(employees []domain.RosterEntry) domain.AvailableHeadcount {
	available := domain.AvailableHeadcount(lo.SliceToMap(domain.CanonicalDepartments,
		func(d domain.Department) (domain.Department, int) { return d, 0 }))
	for _, e := range employees {
		if e.Department.IsCanonical() {
			available[e.Department]++
		}
	}
	return available
}

// InWindow reports whether week lies in (reportDate, reportDate+windowWeeks*7d].
func InWindow(week, reportDate time.Time, windowWeeks int) bool {
	end := reportDate.AddDate(0, 0, 7*windowWeeks)
	return week.After(reportDate) && !week.After(end)
}

type demandKey struct {
	department domain.Department
	week       time.Time
}

// BuildWeeklyHeadcount joins hours against the roster and returns the
// windowed department-week gap rows together with the available headcount.
// Resources without a canonical department contribute nothing. A
// non-positive window falls back to DefaultWindowWeeks.
func BuildWeeklyHeadcount(records []domain.LongRecord, roster domain.Roster, reportDate time.Time, windowWeeks int) ([]domain.WeeklyGapRow, domain.AvailableHeadcount) {
	if windowWeeks <= 0 {
		windowWeeks = domain.DefaultWindowWeeks
	}

	mapping := BuildMapping(roster)
	available := CountAvailable(roster.Employees)

	demand := make(map[demandKey]float64)
	for _, rec := range records {
		dept, ok := mapping[rec.ResourceName]
		if !ok || !dept.IsCanonical() {
			continue
		}
		if !InWindow(rec.Week, reportDate, windowWeeks) {
			continue
		}
		demand[demandKey{dept, rec.Week}] += rec.Hours / domain.HoursPerFTE
	}

	rows := make([]domain.WeeklyGapRow, 0, len(demand))
	for k, d := range demand {
		avail := available[k.department]
		rows = append(rows, domain.WeeklyGapRow{
			Department: k.department,
			Week:       k.week,
			Demand:     d,
			Available:  avail,
			Gap:        float64(avail) - d,
		})
	}

	SortGapRows(rows)
	return rows, available
}

// SortGapRows orders rows by canonical department, then week.
func SortGapRows(rows []domain.WeeklyGapRow) {
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := rows[i].Department.Rank(), rows[j].Department.Rank()
		if ri != rj {
			return ri < rj
		}
		return rows[i].Week.Before(rows[j].Week)
	})
}
