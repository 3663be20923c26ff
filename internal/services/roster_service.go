package services

import (
	"context"
	"log/slog"

	"staffgap/internal/infrastructure"
	"staffgap/pkg/contracts/domain"
)

// RosterRepository persists the definitions workbook.
type RosterRepository interface {
	RosterSource
	Save(ctx context.Context, data []byte) (*domain.RosterSummary, error)
	Clear(ctx context.Context) error
	Status(ctx context.Context) (*domain.RosterStatus, error)
}

// RosterService manages the uploaded definitions workbook
type RosterService struct {
	repo    RosterRepository
	metrics *infrastructure.HeadcountMetrics
	logger  *slog.Logger
}

// NewRosterService creates a new roster service
func NewRosterService(repo RosterRepository, metrics *infrastructure.HeadcountMetrics, logger *slog.Logger) *RosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RosterService{
		repo:    repo,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "roster_service")),
	}
}

// Upload validates and saves a definitions workbook.
func (s *RosterService) Upload(ctx context.Context, data []byte) (*domain.RosterSummary, error) {
	ctx, span := infrastructure.StartSpan(ctx, "roster.upload")
	defer span.End()

	summary, err := s.repo.Save(ctx, data)
	s.metrics.RecordRosterUpload(ctx, err == nil)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	return summary, nil
}

// Status describes the saved workbook.
func (s *RosterService) Status(ctx context.Context) (*domain.RosterStatus, error) {
	return s.repo.Status(ctx)
}

// Clear removes the saved workbook.
func (s *RosterService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear definitions", slog.String("error", err.Error()))
		return err
	}
	return nil
}
