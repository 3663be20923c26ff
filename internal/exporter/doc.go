// Package exporter renders headcount reports for download and archiving.
//
// CSV: the long Department,Week,Demand,Available,Gap table and the pivoted
// Department x Week matrix, both with a UTF-8 BOM for Excel.
//
// XLSX: one heat-map sheet per view on a red/white/navy scale centred at
// zero, plus the "Current Staff Availability" legend sheet.
//
// HTML: the availability legend as a standalone page.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(paths, logger)
//	written, err := exp.SaveAll(report, exporter.Formats)
package exporter
