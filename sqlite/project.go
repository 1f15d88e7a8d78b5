package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/docscope/docscope"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docscope.ProjectService = (*ProjectService)(nil)

// ProjectService implements docscope.ProjectService using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

// CreateProject creates a new project.
func (s *ProjectService) CreateProject(ctx context.Context, project *docscope.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	project.ID = uuid.New().String()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, doc_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, project.ID, project.Name, project.DocPath,
		project.CreatedAt.Format(time.RFC3339), project.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindProjectByName retrieves a project by name.
func (s *ProjectService) FindProjectByName(ctx context.Context, name string) (*docscope.Project, error) {
	var project docscope.Project
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, doc_path, created_at, updated_at
		FROM projects
		WHERE name = ?
	`, name).Scan(&project.ID, &project.Name, &project.DocPath, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, docscope.Errorf(docscope.ENOTFOUND, "project not found")
	}
	if err != nil {
		return nil, err
	}

	if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &project, nil
}

// FindProjects retrieves all projects, newest first.
func (s *ProjectService) FindProjects(ctx context.Context) ([]*docscope.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, doc_path, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*docscope.Project
	for rows.Next() {
		var project docscope.Project
		var createdAt, updatedAt string

		if err := rows.Scan(&project.ID, &project.Name, &project.DocPath, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if project.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if project.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		projects = append(projects, &project)
	}

	return projects, rows.Err()
}

// DeleteProject permanently removes a project. Saved selection entries go
// with it via the foreign key cascade.
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docscope.Errorf(docscope.ENOTFOUND, "project not found")
	}

	return nil
}
