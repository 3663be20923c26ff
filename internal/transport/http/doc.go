// Package http contains the HTTP handlers of the headcount service.
//
// Handlers follow one shape: a struct holding its service, a component
// logger and the shared RFC 7807 error handler, with a Routes method that
// returns a chi sub-router mounted by the application:
//
//	/api/health, /api/health/live, /api/health/ready, /api/version
//	/api/roster             GET status, PUT upload, DELETE clear
//	/api/headcount          POST run, POST /export, GET /windows
//
// Uploads are multipart forms. The definitions workbook goes in the
// "definitions" field; hours exports go in "active" and the optional
// "oppty" field.
package http
