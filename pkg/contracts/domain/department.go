package domain

// Department is one of the canonical staffing departments.
type Department string

const (
	DepartmentCreativeDesigner Department = "Creative - Designer"
	DepartmentCreativeWriter   Department = "Creative - Writer"
	DepartmentTechFrontEnd     Department = "Tech - Front-end"
	DepartmentTechBackEnd      Department = "Tech - Back-end"
	DepartmentVideo            Department = "Video"
	DepartmentStrategy         Department = "Strategy"
	DepartmentPRTraditional    Department = "PR - Traditional"
	DepartmentPRSocial         Department = "PR - Social"
)

// Legend-only departments. They are outside the canonical set, so their
// availability is always 0.
const (
	DepartmentAccount           Department = "Account"
	DepartmentProjectManagement Department = "Project Management"
)

// CanonicalDepartments is the closed department set. Roster joins, demand
// aggregation and availability counts all filter against this list.
var CanonicalDepartments = []Department{
	DepartmentCreativeDesigner,
	DepartmentCreativeWriter,
	DepartmentTechFrontEnd,
	DepartmentTechBackEnd,
	DepartmentVideo,
	DepartmentStrategy,
	DepartmentPRTraditional,
	DepartmentPRSocial,
}

// DisplayOrder is the row order used by heat maps.
var DisplayOrder = []Department{
	DepartmentCreativeDesigner,
	DepartmentCreativeWriter,
	DepartmentPRTraditional,
	DepartmentPRSocial,
	DepartmentStrategy,
	DepartmentTechFrontEnd,
	DepartmentTechBackEnd,
	DepartmentVideo,
}

var canonicalIndex = func() map[Department]int {
	idx := make(map[Department]int, len(CanonicalDepartments))
	for i, d := range CanonicalDepartments {
		idx[d] = i
	}
	return idx
}()

// IsCanonical reports whether d belongs to the canonical department set.
func (d Department) IsCanonical() bool {
	_, ok := canonicalIndex[d]
	return ok
}

// Rank returns the position of d in CanonicalDepartments, or -1.
func (d Department) Rank() int {
	if i, ok := canonicalIndex[d]; ok {
		return i
	}
	return -1
}

// LegendGroup bundles departments shown together in the availability legend.
type LegendGroup struct {
	Name        string       `json:"name"`
	Departments []Department `json:"departments"`
}

// LegendGroups is the grouping used by the "Current Staff Availability" legend.
var LegendGroups = []LegendGroup{
	{Name: "Account", Departments: []Department{DepartmentAccount}},
	{Name: "Creative", Departments: []Department{DepartmentCreativeDesigner, DepartmentCreativeWriter}},
	{Name: "PR", Departments: []Department{DepartmentPRTraditional, DepartmentPRSocial}},
	{Name: "Project Management", Departments: []Department{DepartmentProjectManagement}},
	{Name: "Strategy", Departments: []Department{DepartmentStrategy}},
	{Name: "Tech", Departments: []Department{DepartmentTechFrontEnd, DepartmentTechBackEnd}},
	{Name: "Video", Departments: []Department{DepartmentVideo}},
}
