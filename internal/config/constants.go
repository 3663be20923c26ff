package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"staffgap/pkg/contracts"
)

// Application constants
const (
	AppName    = "Staff Gap"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable read by envconfig.
	EnvPrefix = "STAFFGAP"

	// RosterFileName is the persisted definitions workbook.
	RosterFileName = "Service-Staff-Definitions.xlsx"

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultLogsDir    = "logs"
	DefaultReportsDir = "data/reports"

	DefaultMaxUploadBytes int64 = 10 << 20

	DefaultHTTPTimeout      = 30 * time.Second
	ReportGenerationTimeout = 2 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)

// AllowedWindows lists the look-ahead horizons, in weeks, a caller may request.
var AllowedWindows = []int{12, 13, 26}

// IsAllowedWindow reports whether weeks is one of AllowedWindows.
func IsAllowedWindow(weeks int) bool {
	for _, w := range AllowedWindows {
		if w == weeks {
			return true
		}
	}
	return false
}

// ParseWindows reads a comma separated list of window lengths in weeks.
// Blank input yields no windows. Allowed values are not checked here.
func ParseWindows(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	windows := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%q is not a number of weeks", strings.TrimSpace(p))
		}
		windows = append(windows, n)
	}
	return windows, nil
}
