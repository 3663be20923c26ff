package dataprocessing

import "regexp"

// Fixed export layout. Indices are 0-based CSV records after blank lines
// are skipped, and 0-based columns.
const (
	HeaderBlockRows  = 11
	MonthRow         = 4
	DayRow           = 5
	BodyHeaderRow    = 6
	BodyStartRow     = 7
	NameColumn       = 1
	WeekColumnOffset = 5
)

// Roster workbook layout.
const (
	EmployeesSheet         = "Employees - Resources"
	ServicesSheet          = "Services"
	EmployeeNameColumn     = "Resource Name"
	ServiceNameColumn      = "Service"
	RosterDepartmentColumn = "Department"
)

var anchorDatePattern = regexp.MustCompile(`Start Date:\s*([0-9]{1,2})/([0-9]{1,2})/([0-9]{4})`)
