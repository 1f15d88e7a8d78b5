package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/cache"
	docscopehttp "github.com/docscope/docscope/http"
	"github.com/docscope/docscope/session"
	docscopeslog "github.com/docscope/docscope/slog"
	"github.com/docscope/docscope/tui"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	var opts []docscopehttp.ClientOption
	if c.RPS > 0 {
		opts = append(opts, docscopehttp.WithRateLimit(c.RPS, 1))
	}
	client := docscopehttp.NewClient(c.Server, opts...)

	var states docscope.StateService = client
	var lister docscope.Lister = client

	// The TUI owns the terminal, so request logging goes to a file.
	if c.Log != "" {
		f, err := os.OpenFile(c.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()

		logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		states = docscopeslog.NewLoggingStateService(states, logger)
		lister = docscopeslog.NewLoggingLister(lister, logger)
	}

	ctrl := session.NewController(states, cache.New(lister))
	return tui.Run(ctrl)
}
