package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/docscope/docscope"
	main "github.com/docscope/docscope/cmd/docscope"
	"github.com/docscope/docscope/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists projects with ID, name, and path", func(t *testing.T) {
		t.Parallel()

		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context) ([]*docscope.Project, error) {
				return []*docscope.Project{
					{
						ID:        "proj-123",
						Name:      "flask-docs",
						DocPath:   "/srv/docs/flask",
						CreatedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
					},
					{
						ID:        "proj-456",
						Name:      "go-docs",
						DocPath:   "/srv/docs/go",
						CreatedAt: time.Date(2026, 1, 16, 11, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   stderr,
			Projects: projects,
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "proj-123  flask-docs  /srv/docs/flask")
		assert.Contains(t, stdout.String(), "proj-456  go-docs  /srv/docs/go")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints a hint when no projects exist", func(t *testing.T) {
		t.Parallel()

		projects := &mock.ProjectService{
			FindProjectsFn: func(_ context.Context) ([]*docscope.Project, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Projects: projects,
		}

		cmd := &main.ListCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No projects found")
	})
}
