package docscope

import (
	"context"
	"time"
)

// Project represents a documentation root whose tree can be scoped.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DocPath   string    `json:"docPath"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the project contains invalid fields.
func (p *Project) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "project name required")
	}
	if p.DocPath == "" {
		return Errorf(EINVALID, "project doc path required")
	}
	return nil
}

// ProjectService represents a service for managing projects.
type ProjectService interface {
	// CreateProject creates a new project.
	CreateProject(ctx context.Context, project *Project) error

	// FindProjectByName retrieves a project by name.
	// Returns ENOTFOUND if project does not exist.
	FindProjectByName(ctx context.Context, name string) (*Project, error)

	// FindProjects retrieves all projects, newest first.
	FindProjects(ctx context.Context) ([]*Project, error)

	// DeleteProject permanently removes a project and its saved selection.
	// Returns ENOTFOUND if project does not exist.
	DeleteProject(ctx context.Context, id string) error
}

// StateStore persists selections per project. This is the server-side
// counterpart of StateService: the store holds raw entries and leaves
// normalization policy to its caller.
type StateStore interface {
	// LoadState retrieves the saved selection for a project. A project
	// with no saved selection yields an empty set, not ENOTFOUND.
	LoadState(ctx context.Context, projectID string) (*PathSet, error)

	// SaveState replaces the saved selection for a project.
	SaveState(ctx context.Context, projectID string, set *PathSet) error
}
