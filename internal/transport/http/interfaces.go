package http

import (
	"context"
	"io"

	"staffgap/internal/services"
	"staffgap/pkg/contracts/domain"
)

// HeadcountRunner builds gap reports from uploaded exports
type HeadcountRunner interface {
	Run(ctx context.Context, req services.HeadcountRequest) (*domain.HeadcountReport, error)
	Windows() []int
}

// RosterManager manages the saved definitions workbook
type RosterManager interface {
	Upload(ctx context.Context, data []byte) (*domain.RosterSummary, error)
	Status(ctx context.Context) (*domain.RosterStatus, error)
	Clear(ctx context.Context) error
}

// ReportRenderer renders a report in one download format
type ReportRenderer interface {
	Export(w io.Writer, report *domain.HeadcountReport, format domain.ReportFormat, view *domain.GapView) error
}
