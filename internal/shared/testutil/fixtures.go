package testutil

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ExportRow is one resource line of a fixture export.
type ExportRow struct {
	Name  string
	Hours []string
}

// ExportFixture describes a resource-hours export in the fixed layout:
// record 0 carries the anchor text, records 4 and 5 the month and day
// tokens, record 6 the body titles and records 7+ one resource each.
// Week cells start at column 5.
type ExportFixture struct {
	Anchor string
	Months []string
	Days   []string
	Rows   []ExportRow
	// BodyTitles overrides the width of record 6; nil derives it from Days.
	BodyTitles []string
}

const exportWeekOffset = 5

// CSV renders the fixture as export bytes.
func (f ExportFixture) CSV(t testing.TB) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	weeks := len(f.Days)
	if len(f.Months) > weeks {
		weeks = len(f.Months)
	}

	pad := func(cells []string) []string {
		return append(make([]string, exportWeekOffset), cells...)
	}

	records := [][]string{
		{f.Anchor, "", ""},
		{"Resource Allocation", "", ""},
		{"Generated by planning tool", "", ""},
		{"Filters: none", "", ""},
		pad(f.Months),
		pad(f.Days),
	}

	titles := f.BodyTitles
	if titles == nil {
		titles = []string{"Type", "Resource Name", "Role", "Office", "Total"}
		for i := 0; i < weeks; i++ {
			titles = append(titles, "Week")
		}
	}
	records = append(records, titles)

	for _, r := range f.Rows {
		records = append(records, append([]string{"R", r.Name, "", "", ""}, r.Hours...))
	}

	// csv.Writer requires no uniform width; the reader side is lenient.
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			t.Fatalf("write fixture record: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush fixture: %v", err)
	}
	return buf.Bytes()
}

// SampleExport is the March/April 2025 export used across packages:
// weeks 2025-03-03, 2025-03-10 and 2025-04-07 with Jane Doe's 16/0/48 hours.
func SampleExport() ExportFixture {
	return ExportFixture{
		Anchor: "Report — Start Date: 03/03/2025",
		Months: []string{"March 2025", "", "April 2025"},
		Days:   []string{"3", "10", "7"},
		Rows: []ExportRow{
			{Name: "Jane Doe", Hours: []string{"16", "0", "48"}},
		},
	}
}

// RosterFixture lists the rows of a definitions workbook.
type RosterFixture struct {
	Employees [][2]string
	Services  [][2]string
	// Omit names sheets to leave out of the workbook.
	Omit []string
	// EmployeeHeaders overrides the "Employees - Resources" header row.
	EmployeeHeaders []string
}

// Roster sheet and column names.
const (
	EmployeesSheet = "Employees - Resources"
	ServicesSheet  = "Services"
)

// XLSX renders the fixture as workbook bytes.
func (f RosterFixture) XLSX(t testing.TB) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	omitted := make(map[string]bool, len(f.Omit))
	for _, s := range f.Omit {
		omitted[s] = true
	}

	empHeaders := f.EmployeeHeaders
	if empHeaders == nil {
		empHeaders = []string{"Resource Name", "Title", "Department"}
	}

	sheets := []struct {
		name    string
		headers []string
		rows    [][2]string
	}{
		{EmployeesSheet, empHeaders, f.Employees},
		{ServicesSheet, []string{"Service", "Department"}, f.Services},
	}

	created := 0
	for _, s := range sheets {
		if omitted[s.name] {
			continue
		}
		if _, err := wb.NewSheet(s.name); err != nil {
			t.Fatalf("create sheet %s: %v", s.name, err)
		}
		created++

		if err := wb.SetSheetRow(s.name, "A1", &s.headers); err != nil {
			t.Fatalf("write headers: %v", err)
		}
		for i, r := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			values := []interface{}{r[0], r[1]}
			if len(s.headers) == 3 {
				values = []interface{}{r[0], "Staff", r[1]}
			}
			if err := wb.SetSheetRow(s.name, cell, &values); err != nil {
				t.Fatalf("write row: %v", err)
			}
		}
	}

	// The default sheet stays only when nothing else was created.
	if created > 0 {
		if err := wb.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("delete default sheet: %v", err)
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

// SampleRoster maps Jane Doe to Video with one employee in Strategy and a
// service mapped to Tech - Back-end.
func SampleRoster() RosterFixture {
	return RosterFixture{
		Employees: [][2]string{
			{"Jane Doe", "Video"},
			{"John Roe", "Strategy"},
		},
		Services: [][2]string{
			{"Hosting Retainer", "Tech - Back-end"},
		},
	}
}
