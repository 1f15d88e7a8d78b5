package mock

import (
	"context"

	"github.com/docscope/docscope"
)

var _ docscope.StateService = (*StateService)(nil)

// StateService is a mock implementation of docscope.StateService.
type StateService struct {
	LoadStateFn func(ctx context.Context) (*docscope.PathSet, error)
	SaveStateFn func(ctx context.Context, set *docscope.PathSet) (*docscope.PathSet, error)
}

func (s *StateService) LoadState(ctx context.Context) (*docscope.PathSet, error) {
	return s.LoadStateFn(ctx)
}

func (s *StateService) SaveState(ctx context.Context, set *docscope.PathSet) (*docscope.PathSet, error) {
	return s.SaveStateFn(ctx, set)
}
