// Package slog provides logging decorators for docscope services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docscope/docscope"
)

// Ensure LoggingLister implements docscope.Lister.
var _ docscope.Lister = (*LoggingLister)(nil)

// LoggingLister wraps a Lister with debug logging for tree listings.
type LoggingLister struct {
	next   docscope.Lister
	logger *slog.Logger
}

// NewLoggingLister creates a new LoggingLister.
func NewLoggingLister(next docscope.Lister, logger *slog.Logger) *LoggingLister {
	return &LoggingLister{next: next, logger: logger}
}

// ListChildren delegates to the wrapped lister and logs the outcome.
func (l *LoggingLister) ListChildren(ctx context.Context, rel string) ([]docscope.Node, error) {
	begin := time.Now()
	nodes, err := l.next.ListChildren(ctx, rel)
	if err != nil {
		l.logger.Error("tree listing failed",
			"rel", displayPath(rel),
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	l.logger.Debug("tree listing",
		"rel", displayPath(rel),
		"children", len(nodes),
		"duration", time.Since(begin),
	)
	return nodes, nil
}

// displayPath makes the root path visible in log output.
func displayPath(rel string) string {
	if rel == "" {
		return "(root)"
	}
	return rel
}
