package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docscope/docscope"
)

// Ensure LoggingStateService implements docscope.StateService.
var _ docscope.StateService = (*LoggingStateService)(nil)

// LoggingStateService wraps a StateService with info logging for loads
// and saves.
type LoggingStateService struct {
	next   docscope.StateService
	logger *slog.Logger
}

// NewLoggingStateService creates a new LoggingStateService.
func NewLoggingStateService(next docscope.StateService, logger *slog.Logger) *LoggingStateService {
	return &LoggingStateService{next: next, logger: logger}
}

// LoadState delegates to the wrapped service and logs the outcome.
func (s *LoggingStateService) LoadState(ctx context.Context) (*docscope.PathSet, error) {
	begin := time.Now()
	set, err := s.next.LoadState(ctx)
	if err != nil {
		s.logger.Error("state load failed",
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("state loaded",
		"entries", set.Len(),
		"duration", time.Since(begin),
	)
	return set, nil
}

// SaveState delegates to the wrapped service and logs the outcome.
func (s *LoggingStateService) SaveState(ctx context.Context, set *docscope.PathSet) (*docscope.PathSet, error) {
	begin := time.Now()
	canonical, err := s.next.SaveState(ctx, set)
	if err != nil {
		s.logger.Error("state save failed",
			"entries", set.Len(),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	s.logger.Info("state saved",
		"entries", set.Len(),
		"canonical_entries", canonical.Len(),
		"duration", time.Since(begin),
	)
	return canonical, nil
}
