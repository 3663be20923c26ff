package dataprocessing

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"staffgap/pkg/contracts/domain"
)

// PivotGap lays gap rows out as a Department x Week matrix with ascending
// weeks. With a nil order the rows' own departments are used in canonical
// order; otherwise exactly the listed departments appear, in that order,
// including those without data.
func PivotGap(rows []domain.WeeklyGapRow, order []domain.Department) domain.GapMatrix {
	weeks := lo.Uniq(lo.Map(rows, func(r domain.WeeklyGapRow, _ int) time.Time { return r.Week }))
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	departments := order
	if departments == nil {
		present := lo.Uniq(lo.Map(rows, func(r domain.WeeklyGapRow, _ int) domain.Department { return r.Department }))
		departments = lo.Filter(domain.CanonicalDepartments, func(d domain.Department, _ int) bool {
			return lo.Contains(present, d)
		})
	}

	rowIdx := make(map[domain.Department]int, len(departments))
	for i, d := range departments {
		rowIdx[d] = i
	}
	colIdx := make(map[time.Time]int, len(weeks))
	for j, w := range weeks {
		colIdx[w] = j
	}

	cells := make([][]*float64, len(departments))
	for i := range cells {
		cells[i] = make([]*float64, len(weeks))
	}
	for _, r := range rows {
		i, ok := rowIdx[r.Department]
		if !ok {
			continue
		}
		gap := r.Gap
		cells[i][colIdx[r.Week]] = &gap
	}

	return domain.GapMatrix{
		Departments: append([]domain.Department(nil), departments...),
		Weeks:       weeks,
		WeekLabels:  lo.Map(weeks, func(w time.Time, _ int) string { return w.Format(domain.WeekLabelLayout) }),
		Cells:       cells,
	}
}
