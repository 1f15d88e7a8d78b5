package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/fs"
	docscopehttp "github.com/docscope/docscope/http"
	docscopeslog "github.com/docscope/docscope/slog"
	"github.com/docscope/docscope/walk"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(deps.Stderr, &slog.HandlerOptions{Level: level}))

	project, err := ensureProject(deps, c.Project, c.Root)
	if err != nil {
		return err
	}

	var lister docscope.Lister = fs.NewLister(c.Root)
	lister = docscopeslog.NewLoggingLister(lister, logger)

	server := docscopehttp.NewServer()
	server.Addr = c.Addr
	server.Lister = lister
	server.Store = deps.States
	server.ProjectID = project.ID
	server.Logger = logger
	if c.ExpandFiles {
		server.Expander = &walk.Expander{Lister: lister}
	}

	if err := server.Open(); err != nil {
		return err
	}
	defer server.Close()

	fmt.Fprintf(deps.Stdout, "serving %s for project %q on %s\n", c.Root, project.Name, server.URL())

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	fmt.Fprintln(deps.Stdout, "shutting down")
	return nil
}

// ensureProject finds the named project or creates it rooted at docPath.
func ensureProject(deps *Dependencies, name, docPath string) (*docscope.Project, error) {
	project, err := deps.Projects.FindProjectByName(deps.Ctx, name)
	if err == nil {
		return project, nil
	}
	if docscope.ErrorCode(err) != docscope.ENOTFOUND {
		return nil, err
	}

	project = &docscope.Project{Name: name, DocPath: docPath}
	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}
