package sqlite

import (
	"context"
	"fmt"

	"github.com/docscope/docscope"
)

// Compile-time interface verification.
var _ docscope.StateStore = (*StateStore)(nil)

// StateStore implements docscope.StateStore using SQLite. Each selection
// entry is one row keyed by (project_id, path).
type StateStore struct {
	db *DB
}

// NewStateStore creates a new StateStore.
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// LoadState retrieves the saved selection for a project. A project with no
// saved entries yields an empty set.
func (s *StateStore) LoadState(ctx context.Context, projectID string) (*docscope.PathSet, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, verdict
		FROM search_paths
		WHERE project_id = ?
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payload docscope.Payload
	for rows.Next() {
		var path, verdict string
		if err := rows.Scan(&path, &verdict); err != nil {
			return nil, err
		}
		switch verdict {
		case docscope.VerdictIncluded.String():
			payload.Includes = append(payload.Includes, path)
		case docscope.VerdictExcluded.String():
			payload.Excludes = append(payload.Excludes, path)
		default:
			return nil, fmt.Errorf("unexpected verdict %q for path %q", verdict, path)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docscope.FromPayload(payload), nil
}

// SaveState replaces the saved selection for a project in one transaction.
func (s *StateStore) SaveState(ctx context.Context, projectID string, set *docscope.PathSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM search_paths WHERE project_id = ?", projectID); err != nil {
		return err
	}

	payload := set.Payload()
	for _, path := range payload.Includes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO search_paths (project_id, path, verdict)
			VALUES (?, ?, ?)
		`, projectID, path, docscope.VerdictIncluded.String()); err != nil {
			return err
		}
	}
	for _, path := range payload.Excludes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO search_paths (project_id, path, verdict)
			VALUES (?, ?, ?)
		`, projectID, path, docscope.VerdictExcluded.String()); err != nil {
			return err
		}
	}

	return tx.Commit()
}
