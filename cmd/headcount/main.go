// Command headcount builds headcount gap reports from hours exports and a
// definitions workbook without starting the HTTP service.
//
//	headcount -active active.csv [-oppty oppty.csv] [-roster defs.xlsx] \
//	    [-windows 13,26] [-format csv|xlsx|html|all] [-out dir]
//
// Written report paths are printed to stdout, one per line. Logs go to
// stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"staffgap/internal/config"
	"staffgap/internal/dataprocessing"
	"staffgap/internal/exporter"
	"staffgap/internal/files"
	"staffgap/internal/infrastructure"
	"staffgap/internal/services"
	"staffgap/internal/validation"
	"staffgap/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	roster  string
	active  string
	oppty   string
	windows string
	out     string
	format  string
	level   string
	version bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("headcount", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.roster, "roster", "", "definitions workbook (defaults to the saved data/"+config.RosterFileName+")")
	fs.StringVar(&opts.active, "active", "", "active jobs hours export (required)")
	fs.StringVar(&opts.oppty, "oppty", "", "opportunity jobs hours export")
	fs.StringVar(&opts.windows, "windows", "13,26", "comma separated look-ahead windows in weeks")
	fs.StringVar(&opts.out, "out", "", "output directory (defaults to data/reports relative to the executable)")
	fs.StringVar(&opts.format, "format", "all", "report format: csv, xlsx, html or all")
	fs.StringVar(&opts.level, "log-level", "warn", "log level: debug, info, warn or error")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.active == "" {
		return nil, errors.New("-active is required")
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, "headcount:", err)
		return 1
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	logger := infrastructure.NewLogger(stderr, opts.level)
	ctx := infrastructure.EnsureTraceID(context.Background())
	if err := generate(ctx, opts, stdout, logger); err != nil {
		logger.ErrorContext(ctx, "headcount report failed", slog.String("error", err.Error()))
		fmt.Fprintln(stderr, "headcount:", err)
		return 1
	}
	return 0
}

func generate(ctx context.Context, opts *options, stdout io.Writer, logger *slog.Logger) error {
	windows, err := config.ParseWindows(opts.windows)
	if err != nil {
		return fmt.Errorf("invalid -windows: %w", err)
	}
	formats, err := exporter.ParseFormat(strings.ToLower(opts.format))
	if err != nil {
		return err
	}

	paths, err := resolvePaths(ctx, opts, logger)
	if err != nil {
		return err
	}

	if err := validateInputs(opts, paths, validation.NewFileValidator(logger)); err != nil {
		return err
	}

	loader := dataprocessing.NewRosterLoader(logger)
	store := files.NewRosterStore(paths, loader, logger)
	svc := services.NewHeadcountService(dataprocessing.NewExportParser(logger), store, windows, nil, logger)

	active, err := os.Open(opts.active)
	if err != nil {
		return fmt.Errorf("failed to open active export: %w", err)
	}
	defer active.Close()

	req := services.HeadcountRequest{Active: active, Windows: windows}
	if opts.oppty != "" {
		oppty, err := os.Open(opts.oppty)
		if err != nil {
			return fmt.Errorf("failed to open oppty export: %w", err)
		}
		defer oppty.Close()
		req.Oppty = oppty
	}

	report, err := svc.Run(ctx, req)
	if err != nil {
		return err
	}

	written, err := exporter.NewReportExporter(paths, logger).SaveAll(report, formats)
	for _, path := range written {
		fmt.Fprintln(stdout, path)
	}
	return err
}

func validateInputs(opts *options, paths *config.Paths, v *validation.FileValidator) error {
	if err := v.ValidateExport(opts.active); err != nil {
		return err
	}
	if opts.oppty != "" {
		if err := v.ValidateExport(opts.oppty); err != nil {
			return err
		}
	}
	// the saved roster may legitimately be absent; the run reports that itself
	if opts.roster != "" {
		if err := v.ValidateWorkbook(opts.roster); err != nil {
			return err
		}
	}
	return v.ValidateOutputDirectory(paths.ReportsDir)
}

// resolvePaths starts from the configured layout and applies -roster and -out.
// A configuration that fails to load is reported and replaced by the defaults.
func resolvePaths(ctx context.Context, opts *options, logger *slog.Logger) (*config.Paths, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.WarnContext(ctx, "configuration ignored, using defaults",
			slog.String("error", err.Error()))
		cfg = config.Default()
	}
	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if opts.roster != "" {
		paths.RosterFile = opts.roster
	}
	if opts.out != "" {
		paths.ReportsDir = opts.out
	}
	return paths, nil
}
