package mock

import (
	"context"

	"github.com/docscope/docscope"
)

var _ docscope.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of docscope.ProjectService.
type ProjectService struct {
	CreateProjectFn     func(ctx context.Context, project *docscope.Project) error
	FindProjectByNameFn func(ctx context.Context, name string) (*docscope.Project, error)
	FindProjectsFn      func(ctx context.Context) ([]*docscope.Project, error)
	DeleteProjectFn     func(ctx context.Context, id string) error
}

func (s *ProjectService) CreateProject(ctx context.Context, project *docscope.Project) error {
	return s.CreateProjectFn(ctx, project)
}

func (s *ProjectService) FindProjectByName(ctx context.Context, name string) (*docscope.Project, error) {
	return s.FindProjectByNameFn(ctx, name)
}

func (s *ProjectService) FindProjects(ctx context.Context) ([]*docscope.Project, error) {
	return s.FindProjectsFn(ctx)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	return s.DeleteProjectFn(ctx, id)
}
