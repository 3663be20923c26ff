package files

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"sync"

	"staffgap/internal/config"
	"staffgap/internal/dataprocessing"
	apperrors "staffgap/internal/errors"
	"staffgap/pkg/contracts/domain"
)

// RosterStore persists the definitions workbook.
type RosterStore struct {
	mu     sync.RWMutex
	path   string
	loader *dataprocessing.RosterLoader
	logger *slog.Logger
}

// NewRosterStore creates a store rooted at paths.RosterFile.
func NewRosterStore(paths *config.Paths, loader *dataprocessing.RosterLoader, logger *slog.Logger) *RosterStore {
	if logger == nil {
		logger = slog.Default()
	}
	if loader == nil {
		loader = dataprocessing.NewRosterLoader(logger)
	}
	return &RosterStore{
		path:   paths.GetRosterPath(),
		loader: loader,
		logger: logger.With(slog.String("component", "roster_store")),
	}
}

// Path returns the location of the saved workbook.
func (s *RosterStore) Path() string {
	return s.path
}

// Save validates data as a definitions workbook and replaces the saved copy.
// An invalid workbook is rejected and the previous copy is kept.
func (s *RosterStore) Save(ctx context.Context, data []byte) (*domain.RosterSummary, error) {
	roster, err := s.loader.Load(bytes.NewReader(data))
	if err != nil {
		s.logger.WarnContext(ctx, "rejected definitions upload", slog.String("error", err.Error()))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := WriteFileAtomic(s.path, data); err != nil {
		return nil, apperrors.NewStorageError("failed to save definitions workbook", err).WithContext("path", s.path)
	}

	summary := dataprocessing.SummarizeRoster(roster)
	s.logger.InfoContext(ctx, "definitions saved",
		slog.String("path", s.path),
		slog.Int("size_bytes", len(data)),
		slog.Int("employees", summary.Employees),
		slog.Int("services", summary.Services))
	return &summary, nil
}

// Load reads the saved workbook. It fails with a NOT_FOUND error when
// nothing has been saved yet.
func (s *RosterStore) Load(ctx context.Context) (*domain.Roster, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, apperrors.NewNotFoundError("definitions workbook")
	}
	roster, err := s.loader.LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "definitions loaded", slog.String("path", s.path))
	return roster, nil
}

// Clear removes the saved workbook. Clearing an empty store is not an error.
func (s *RosterStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.NewStorageError("failed to clear definitions workbook", err).WithContext("path", s.path)
	}
	s.logger.InfoContext(ctx, "definitions cleared", slog.String("path", s.path))
	return nil
}

// Status reports whether a workbook is saved and summarizes it.
func (s *RosterStore) Status(ctx context.Context) (*domain.RosterStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := &domain.RosterStatus{Path: s.path}
	info, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return status, nil
	}
	if err != nil {
		return nil, apperrors.NewStorageError("failed to stat definitions workbook", err)
	}

	roster, err := s.loader.LoadFile(s.path)
	if err != nil {
		return nil, err
	}

	modified := info.ModTime().UTC()
	summary := dataprocessing.SummarizeRoster(roster)
	status.Present = true
	status.SizeBytes = info.Size()
	status.ModifiedAt = &modified
	status.Summary = &summary
	return status, nil
}

// Present reports whether a workbook has been saved.
func (s *RosterStore) Present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return config.FileExists(s.path)
}
