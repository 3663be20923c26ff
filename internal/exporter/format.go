package exporter

import (
	"fmt"
	"strconv"

	"staffgap/pkg/contracts/domain"
)

// formatFloat formats demand and gap values for CSV output with exactly 3 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.3f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// ContentType returns the MIME type served for a report format.
func ContentType(format domain.ReportFormat) string {
	switch format {
	case domain.ReportFormatCSV:
		return "text/csv; charset=utf-8"
	case domain.ReportFormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case domain.ReportFormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
