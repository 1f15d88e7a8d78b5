package sqlite_test

import (
	"context"
	"testing"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateProject(t *testing.T) {
	t.Parallel()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewProjectService(setupTestDB(t))
		project := &docscope.Project{Name: "flask-docs", DocPath: "/srv/docs/flask"}

		require.NoError(t, s.CreateProject(context.Background(), project))

		assert.NotEmpty(t, project.ID)
		assert.False(t, project.CreatedAt.IsZero())
		assert.Equal(t, project.CreatedAt, project.UpdatedAt)
	})

	t.Run("rejects invalid project", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewProjectService(setupTestDB(t))
		err := s.CreateProject(context.Background(), &docscope.Project{Name: "no-path"})
		require.Error(t, err)
		assert.Equal(t, docscope.EINVALID, docscope.ErrorCode(err))
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, s.CreateProject(ctx, &docscope.Project{Name: "dup", DocPath: "/a"}))
		err := s.CreateProject(ctx, &docscope.Project{Name: "dup", DocPath: "/b"})
		require.Error(t, err)
	})
}

func TestProjectService_FindProjectByName(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a created project", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewProjectService(setupTestDB(t))
		ctx := context.Background()

		created := &docscope.Project{Name: "flask-docs", DocPath: "/srv/docs/flask"}
		require.NoError(t, s.CreateProject(ctx, created))

		found, err := s.FindProjectByName(ctx, "flask-docs")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.DocPath, found.DocPath)
	})

	t.Run("returns ENOTFOUND for unknown name", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewProjectService(setupTestDB(t))
		_, err := s.FindProjectByName(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, docscope.ENOTFOUND, docscope.ErrorCode(err))
	})
}

func TestProjectService_DeleteProject(t *testing.T) {
	t.Parallel()

	t.Run("removes project and cascades saved selection", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		projects := sqlite.NewProjectService(db)
		states := sqlite.NewStateStore(db)
		ctx := context.Background()

		project := &docscope.Project{Name: "doomed", DocPath: "/tmp/doomed"}
		require.NoError(t, projects.CreateProject(ctx, project))
		require.NoError(t, states.SaveState(ctx, project.ID,
			docscope.FromPayload(docscope.Payload{Includes: []string{"src"}})))

		require.NoError(t, projects.DeleteProject(ctx, project.ID))

		_, err := projects.FindProjectByName(ctx, "doomed")
		assert.Equal(t, docscope.ENOTFOUND, docscope.ErrorCode(err))

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM search_paths WHERE project_id = ?", project.ID).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("returns ENOTFOUND for unknown id", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewProjectService(setupTestDB(t))
		err := s.DeleteProject(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, docscope.ENOTFOUND, docscope.ErrorCode(err))
	})
}
