// Package api contains the HTTP API contracts of the headcount service.
// Version v1 represents the current stable API version.
package api

// Multipart form fields of upload requests.
const (
	FieldDefinitions = "definitions"
	FieldActive      = "active"
	FieldOppty       = "oppty"
)

// HeadcountRequest holds the query parameters of POST /api/headcount.
// The exports themselves travel as multipart files.
type HeadcountRequest struct {
	Windows []int `json:"windows,omitempty" query:"windows" validate:"max=3,unique,dive,window"`
}

// ExportRequest holds the query parameters of POST /api/headcount/export.
// Scope and Window select the view of a CSV download; zero values pick the
// first view.
type ExportRequest struct {
	HeadcountRequest
	Format string `json:"format" query:"format" validate:"required,oneof=csv xlsx html"`
	Scope  string `json:"scope,omitempty" query:"scope" validate:"omitempty,oneof=active combined"`
	Window int    `json:"window,omitempty" query:"window" validate:"omitempty,window"`
}
