package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	LogsDir       string
	RosterFile    string
}

// GetPaths returns the application paths relative to the executable location
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return NewPaths(filepath.Dir(exe)), nil
}

// ResolvePaths honours a configured base directory and falls back to the
// executable location.
func ResolvePaths(cfg PathsConfig) (*Paths, error) {
	if cfg.BaseDir != "" {
		abs, err := filepath.Abs(cfg.BaseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve base dir %s: %v", cfg.BaseDir, err)
		}
		return NewPaths(abs), nil
	}
	return GetPaths()
}

// NewPaths lays out the directory tree under base:
//
//	base/
//	  data/
//	    Service-Staff-Definitions.xlsx
//	    reports/
//	  logs/
func NewPaths(base string) *Paths {
	dataDir := filepath.Join(base, DefaultDataDir)
	return &Paths{
		ExecutableDir: base,
		DataDir:       dataDir,
		ReportsDir:    filepath.Join(base, DefaultReportsDir),
		LogsDir:       filepath.Join(base, DefaultLogsDir),
		RosterFile:    filepath.Join(dataDir, RosterFileName),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
		logger.Debug("Ensured directory exists", slog.String("directory", dir))
	}

	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// GetRosterPath returns the persisted definitions workbook path
func (p *Paths) GetRosterPath() string {
	return p.RosterFile
}

// GetReportFileName builds a dated report file name, e.g.
// headcount_active_13w_20250404.csv
func GetReportFileName(scope string, windowWeeks int, reportDate time.Time, ext string) string {
	return fmt.Sprintf("headcount_%s_%dw_%s.%s", scope, windowWeeks, reportDate.Format("20060102"), ext)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.String("roster_file", p.RosterFile),
		slog.Bool("roster_present", FileExists(p.RosterFile)))
}
