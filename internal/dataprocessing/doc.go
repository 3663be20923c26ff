// Package dataprocessing holds the headcount pipeline: parsing resource-hours
// exports, loading the definitions workbook and aggregating demand against
// availability.
//
// # Data Flow
//
//	export CSV → ExportParser → []LongRecord ─┐
//	                                           ├→ BuildWeeklyHeadcount → []WeeklyGapRow → PivotGap
//	definitions xlsx → RosterLoader → Roster ──┘
//
// # Export Layout
//
// Exports follow a fixed layout. The anchor "Start Date: MM/DD/YYYY" may sit
// anywhere in the first HeaderBlockRows records; the month/year and day
// tokens of each week column sit on MonthRow and DayRow from
// WeekColumnOffset onward; resources start at BodyStartRow with their name
// in NameColumn.
//
// A week column whose tokens do not form a date is dropped on its own. A body
// narrower than the last valid week column is a SHAPE_MISMATCH error.
//
// # Usage
//
//	parser := dataprocessing.NewExportParser(logger)
//	export, err := parser.ParseFile("active.csv")
//	roster, err := dataprocessing.NewRosterLoader(logger).LoadFile("Service-Staff-Definitions.xlsx")
//	rows, available := dataprocessing.BuildWeeklyHeadcount(export.Records, *roster, export.ReportDate, 13)
//	matrix := dataprocessing.PivotGap(rows, domain.DisplayOrder)
package dataprocessing
