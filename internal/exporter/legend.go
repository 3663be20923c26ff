package exporter

import (
	"fmt"

	"staffgap/pkg/contracts/domain"
)

type legendLine struct {
	department domain.Department
	count      int
	text       string
	total      bool
}

// legendLines lists "Department: n" for each member of the group. Groups
// with more than one member end with a bold total line.
func legendLines(group domain.LegendGroup, available domain.AvailableHeadcount) []legendLine {
	lines := make([]legendLine, 0, len(group.Departments)+1)
	for _, d := range group.Departments {
		lines = append(lines, legendLine{
			department: d,
			count:      available[d],
			text:       fmt.Sprintf("%s: %d", d, available[d]),
		})
	}
	if len(group.Departments) > 1 {
		total := available.Total(group.Departments...)
		lines = append(lines, legendLine{
			count: total,
			text:  fmt.Sprintf("%s Total: %d", group.Name, total),
			total: true,
		})
	}
	return lines
}
