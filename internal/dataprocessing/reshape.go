package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"staffgap/pkg/contracts/domain"
)

// Melt reshapes body records from wide (one column per week) to long form.
// Only valid week columns contribute; week i reads column WeekColumnOffset+i.
// Records with a blank name are skipped since no roster entry can match them.
func Melt(body [][]string, weeks []domain.WeekColumn) []domain.LongRecord {
	valid := make([]domain.WeekColumn, 0, len(weeks))
	for _, w := range weeks {
		if w.Valid {
			valid = append(valid, w)
		}
	}

	records := make([]domain.LongRecord, 0, len(body)*len(valid))
	for _, row := range body {
		name := cell(row, NameColumn)
		if name == "" {
			continue
		}
		for _, w := range valid {
			records = append(records, domain.LongRecord{
				ResourceName: name,
				Week:         w.Date,
				Hours:        ParseHours(cell(row, WeekColumnOffset+w.Index)),
			})
		}
	}
	return records
}

// ParseHours converts an hours cell. Blank, non-numeric, NaN and infinite
// values become 0; negatives are kept.
func ParseHours(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
