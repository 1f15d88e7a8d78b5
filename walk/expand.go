// Package walk implements the server-side normalization of a selection:
// collapsing directory-level include entries into the concrete files they
// cover, by walking the tree one listing at a time.
package walk

import (
	"context"
	"fmt"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/bloom"
)

// DefaultMaxDirs limits the number of directories visited in one expansion
// to prevent runaway walks.
const DefaultMaxDirs = 10000

// Expander expands directory includes to file includes.
type Expander struct {
	Lister  docscope.Lister
	MaxDirs int
}

// ExpandToFiles returns a new PathSet whose includes are the concrete file
// paths covered by set, honoring its excludes. Only directories that can
// contribute files are visited: those with an included verdict, or with any
// entry somewhere beneath them. The walk revisits nothing (Bloom-filter
// guard against listing cycles) and fails with EINVALID when it exceeds the
// directory cap. Excludes carry over unchanged.
func (e *Expander) ExpandToFiles(ctx context.Context, set *docscope.PathSet) (*docscope.PathSet, error) {
	maxDirs := e.MaxDirs
	if maxDirs <= 0 {
		maxDirs = DefaultMaxDirs
	}

	seen := bloom.NewPathFilter()
	var files []string

	queue := []string{""}
	seen.Add("")
	visited := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := queue[0]
		queue = queue[1:]

		if !e.relevant(set, dir) {
			continue
		}

		visited++
		if visited > maxDirs {
			return nil, docscope.Errorf(docscope.EINVALID,
				"selection expands beyond %d directories", maxDirs)
		}

		children, err := e.Lister.ListChildren(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("listing %q: %w", dir, err)
		}
		for _, child := range children {
			if child.IsDir() {
				if seen.Test(child.Path) {
					continue
				}
				seen.Add(child.Path)
				queue = append(queue, child.Path)
				continue
			}
			if set.Query(child.Path) == docscope.VerdictIncluded {
				files = append(files, child.Path)
			}
		}
	}

	return docscope.FromPayload(docscope.Payload{
		Includes: files,
		Excludes: set.Payload().Excludes,
	}), nil
}

// relevant reports whether dir's subtree can contribute included files.
func (e *Expander) relevant(set *docscope.PathSet, dir string) bool {
	if set.Query(dir) == docscope.VerdictIncluded {
		return true
	}
	return set.HasEntryUnder(dir)
}
