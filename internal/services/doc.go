// Package services implements the business logic layer between the HTTP
// handlers or CLI and the parsing, aggregation and storage packages.
//
// # Available Services
//
//   - HeadcountService: parses Active/Oppty exports and builds gap views
//   - RosterService: uploads, describes and clears the definitions workbook
//   - HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return internal/errors AppErrors unchanged so that handlers can
// map them onto problem details: parse and roster errors become 422, a
// missing definitions workbook NOT_FOUND, bad windows VALIDATION.
package services
