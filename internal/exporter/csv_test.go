package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staffgap/pkg/contracts/domain"
)

func week(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }

func sampleRows() []domain.WeeklyGapRow {
	return []domain.WeeklyGapRow{
		{Department: domain.DepartmentVideo, Week: week(time.April, 7), Demand: 2.0, Available: 1, Gap: -1.0},
		{Department: domain.DepartmentTechBackEnd, Week: week(time.April, 14), Demand: 0.3333333, Available: 0, Gap: -0.3333333},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, utf8BOM), "missing BOM")
	records, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteGapCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGapCSV(&buf, sampleRows()))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, GapCSVHeaders, records[0])
	assert.Equal(t, []string{"Video", "04/07/2025", "2.000", "1", "-1.000"}, records[1])
	assert.Equal(t, []string{"Tech - Back-end", "04/14/2025", "0.333", "0", "-0.333"}, records[2])
}

func TestWriteGapCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGapCSV(&buf, nil))

	records := readCSV(t, buf.Bytes())
	assert.Equal(t, [][]string{GapCSVHeaders}, records)
}

func TestWriteMatrixCSV(t *testing.T) {
	m := domain.GapMatrix{
		Departments: []domain.Department{domain.DepartmentStrategy, domain.DepartmentVideo},
		Weeks:       []time.Time{week(time.April, 7), week(time.April, 14)},
		WeekLabels:  []string{"04/07/2025", "04/14/2025"},
		Cells: [][]*float64{
			{f64(1.5), nil},
			{nil, nil},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMatrixCSV(&buf, m))

	records := readCSV(t, buf.Bytes())
	assert.Equal(t, [][]string{
		{"Department", "04/07/2025", "04/14/2025"},
		{"Strategy", "1.500", ""},
		{"Video", "", ""},
	}, records)
}

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"three decimals", formatFloat(13.4), "13.400"},
		{"rounding", formatFloat(0.0626), "0.063"},
		{"negative", formatFloat(-2), "-2.000"},
		{"int", formatInt(8), "8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(domain.ReportFormatCSV))
	assert.Contains(t, ContentType(domain.ReportFormatExcel), "spreadsheetml")
	assert.Equal(t, "text/html; charset=utf-8", ContentType(domain.ReportFormatHTML))
	assert.Equal(t, "application/octet-stream", ContentType("pdf"))
}
