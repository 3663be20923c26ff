package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"staffgap/pkg/contracts/domain"
)

var monthNames = func() map[string]time.Month {
	m := make(map[string]time.Month, 24)
	for mo := time.January; mo <= time.December; mo++ {
		name := strings.ToLower(mo.String())
		m[name] = mo
		m[name[:3]] = mo
	}
	return m
}()

// ExtractReportDate searches the header block for "Start Date: MM/DD/YYYY".
// The first match wins. Without a valid match the report date is the UTC
// calendar day of now.
func ExtractReportDate(headerBlock [][]string, now time.Time) time.Time {
	for _, record := range headerBlock {
		for _, cell := range record {
			m := anchorDatePattern.FindStringSubmatch(cell)
			if m == nil {
				continue
			}
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if d, ok := calendarDate(year, time.Month(month), day); ok {
				return d
			}
			return truncateDay(now)
		}
	}
	return truncateDay(now)
}

// ExtractWeekColumns pairs the forward-filled month/year tokens with the day
// tokens, column by column from WeekColumnOffset. A column whose tokens do
// not form a calendar date is returned with Valid=false.
func ExtractWeekColumns(monthRow, dayRow []string) []domain.WeekColumn {
	width := len(monthRow)
	if len(dayRow) > width {
		width = len(dayRow)
	}
	n := width - WeekColumnOffset
	if n <= 0 {
		return nil
	}

	months := forwardFill(cellsFrom(monthRow, WeekColumnOffset, n))
	days := cellsFrom(dayRow, WeekColumnOffset, n)

	weeks := make([]domain.WeekColumn, n)
	for i := 0; i < n; i++ {
		weeks[i] = domain.WeekColumn{Index: i}
		year, month, ok := parseMonthYear(months[i])
		if !ok {
			continue
		}
		day, ok := parseDay(days[i])
		if !ok {
			continue
		}
		if d, ok := calendarDate(year, month, day); ok {
			weeks[i].Date = d
			weeks[i].Valid = true
		}
	}
	return weeks
}

// forwardFill carries the last non-blank token across blank cells.
func forwardFill(cells []string) []string {
	out := make([]string, len(cells))
	carry := ""
	for i, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			carry = c
		}
		out[i] = carry
	}
	return out
}

func cellsFrom(record []string, offset, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		if j := offset + i; j < len(record) {
			out[i] = record[j]
		}
	}
	return out
}

// parseMonthYear accepts "March 2025" or "Mar 2025", case-insensitive.
func parseMonthYear(token string) (int, time.Month, bool) {
	fields := strings.Fields(token)
	if len(fields) != 2 {
		return 0, 0, false
	}
	month, ok := monthNames[strings.ToLower(fields[0])]
	if !ok {
		return 0, 0, false
	}
	year, err := strconv.Atoi(fields[1])
	if err != nil || year <= 0 {
		return 0, 0, false
	}
	return year, month, true
}

// parseDay accepts integral or float day tokens ("7", "7.0") and truncates.
func parseDay(token string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// calendarDate rejects dates time.Date would normalise, such as 02/30.
func calendarDate(year int, month time.Month, day int) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 {
		return time.Time{}, false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
