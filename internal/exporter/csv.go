package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"staffgap/pkg/contracts/domain"
)

// utf8BOM helps Excel recognise UTF-8 CSV files
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// GapCSVHeaders is the header record of the long gap table.
var GapCSVHeaders = []string{"Department", "Week", "Demand", "Available", "Gap"}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteCSV writes headers and records to w with the given options
func WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteGapCSV writes the long Department,Week,Demand,Available,Gap table.
func WriteGapCSV(w io.Writer, rows []domain.WeeklyGapRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			string(r.Department),
			r.WeekLabel(),
			formatFloat(r.Demand),
			formatInt(r.Available),
			formatFloat(r.Gap),
		})
	}

	return WriteCSV(w, WriteOptions{
		Headers:   GapCSVHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteMatrixCSV writes the pivoted gap matrix, one row per department and
// one column per week. Missing cells are left blank.
func WriteMatrixCSV(w io.Writer, m domain.GapMatrix) error {
	headers := append([]string{"Department"}, m.WeekLabels...)

	records := make([][]string, 0, len(m.Departments))
	for i, d := range m.Departments {
		record := make([]string, 0, len(m.Weeks)+1)
		record = append(record, string(d))
		for _, c := range m.Cells[i] {
			if c == nil {
				record = append(record, "")
				continue
			}
			record = append(record, formatFloat(*c))
		}
		records = append(records, record)
	}

	return WriteCSV(w, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}
