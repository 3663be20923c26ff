// Package app provides application initialization and lifecycle management
// for the headcount gap service.
//
// # Initialization Flow
//
//  1. Load configuration from the environment and an optional YAML file
//  2. Initialize logging and OpenTelemetry
//  3. Resolve and create the data, reports and logs directories
//  4. Wire the roster store, parsers, services and exporter
//  5. Set up HTTP handlers and middleware
//  6. Start the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests and
// flushes telemetry. Initialization errors are returned to the caller; the
// package never calls os.Exit.
package app
