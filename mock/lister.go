package mock

import (
	"context"

	"github.com/docscope/docscope"
)

var _ docscope.Lister = (*Lister)(nil)

// Lister is a mock implementation of docscope.Lister.
type Lister struct {
	ListChildrenFn func(ctx context.Context, rel string) ([]docscope.Node, error)
}

func (l *Lister) ListChildren(ctx context.Context, rel string) ([]docscope.Node, error) {
	return l.ListChildrenFn(ctx, rel)
}
