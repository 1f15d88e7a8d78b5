package mock

import (
	"context"

	"github.com/docscope/docscope"
)

var _ docscope.StateStore = (*StateStore)(nil)

// StateStore is a mock implementation of docscope.StateStore.
type StateStore struct {
	LoadStateFn func(ctx context.Context, projectID string) (*docscope.PathSet, error)
	SaveStateFn func(ctx context.Context, projectID string, set *docscope.PathSet) error
}

func (s *StateStore) LoadState(ctx context.Context, projectID string) (*docscope.PathSet, error) {
	return s.LoadStateFn(ctx, projectID)
}

func (s *StateStore) SaveState(ctx context.Context, projectID string, set *docscope.PathSet) error {
	return s.SaveStateFn(ctx, projectID, set)
}
