package main

import (
	"context"
	"io"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Projects docscope.ProjectService
	States   docscope.StateStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Serve tree listings and selection state for a documentation root"`
	Browse BrowseCmd `cmd:"" help:"Browse and edit a selection in the terminal"`
	State  StateCmd  `cmd:"" help:"Print the saved selection for a server"`
	List   ListCmd   `cmd:"" help:"List all registered projects"`
	Delete DeleteCmd `cmd:"" help:"Delete a project and its saved selection"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Root        string `arg:"" type:"existingdir" help:"Documentation root directory"`
	Project     string `short:"p" default:"default" help:"Project name, created on first use"`
	Addr        string `default:"localhost:8844" help:"Address to listen on"`
	ExpandFiles bool   `help:"Collapse directory includes to concrete file paths on save"`
	Verbose     bool   `short:"v" help:"Log tree listings at debug level"`
}

// BrowseCmd is the "browse" subcommand.
type BrowseCmd struct {
	Server string  `default:"http://localhost:8844" help:"Base URL of a running docscope server"`
	RPS    float64 `default:"0" help:"Rate limit for server requests, 0 disables"`
	Log    string  `type:"path" help:"Log state loads/saves and tree listings to this file"`
}

// StateCmd is the "state" subcommand.
type StateCmd struct {
	Server string `default:"http://localhost:8844" help:"Base URL of a running docscope server"`
	Globs  bool   `help:"Print the selection as glob patterns instead of JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Project name"`
	Force bool   `help:"Confirm deletion"`
}
