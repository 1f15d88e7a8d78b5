// Package view derives the flat row list a tree widget renders from the
// materialized tree, the expansion state, and the selection engine.
package view

import (
	"strings"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/cache"
)

// Row is one renderable line of the tree.
type Row struct {
	Node     docscope.Node
	Depth    int
	State    docscope.State
	Expanded bool
	Loading  bool
}

// Model tracks which directories are expanded or loading and flattens the
// materialized tree into rows. It holds no tree data itself; listings live
// in the cache.
type Model struct {
	engine *docscope.Engine
	cache  *cache.Cache

	expanded map[string]bool
	loading  map[string]bool
	filter   string
}

// New creates a Model over the given engine and cache.
func New(engine *docscope.Engine, c *cache.Cache) *Model {
	return &Model{
		engine:   engine,
		cache:    c,
		expanded: make(map[string]bool),
		loading:  make(map[string]bool),
	}
}

// IsExpanded reports whether the directory at path is expanded.
func (m *Model) IsExpanded(path string) bool {
	return m.expanded[path]
}

// IsLoading reports whether the directory at path has a listing in flight.
func (m *Model) IsLoading(path string) bool {
	return m.loading[path]
}

// BeginExpand transitions a collapsed directory towards expanded. When its
// children are already materialized it expands immediately and returns
// false; otherwise it marks the path loading and returns true, meaning the
// caller must fetch the listing and report back via FinishExpand. A path
// that is already loading or expanded is left alone.
func (m *Model) BeginExpand(path string) (needsLoad bool) {
	path = docscope.Normalize(path)
	if m.loading[path] || m.expanded[path] {
		return false
	}
	if _, ok := m.cache.Cached(path); ok {
		m.expanded[path] = true
		return false
	}
	m.loading[path] = true
	return true
}

// FinishExpand completes a load started by BeginExpand. On success the
// directory expands; on failure it returns to collapsed-unloaded so the
// user can retry.
func (m *Model) FinishExpand(path string, err error) {
	path = docscope.Normalize(path)
	delete(m.loading, path)
	if err == nil {
		m.expanded[path] = true
	}
}

// Collapse collapses the directory at path. Its listing stays cached, so
// re-expanding is instant.
func (m *Model) Collapse(path string) {
	delete(m.expanded, docscope.Normalize(path))
}

// ToggleExpand collapses an expanded directory or begins expanding a
// collapsed one. The return value has the same meaning as BeginExpand's.
func (m *Model) ToggleExpand(path string) (needsLoad bool) {
	path = docscope.Normalize(path)
	if m.expanded[path] {
		m.Collapse(path)
		return false
	}
	return m.BeginExpand(path)
}

// ExpandAll expands every materialized directory. Nothing is fetched;
// directories that were never loaded stay collapsed.
func (m *Model) ExpandAll() {
	m.expandCached("")
}

func (m *Model) expandCached(path string) {
	nodes, ok := m.cache.Cached(path)
	if !ok {
		return
	}
	if path != "" {
		m.expanded[path] = true
	}
	for _, n := range nodes {
		if n.IsDir() {
			m.expandCached(n.Path)
		}
	}
}

// CollapseAll collapses every directory.
func (m *Model) CollapseAll() {
	m.expanded = make(map[string]bool)
}

// SetFilter sets the case-insensitive substring filter. An empty string
// clears it.
func (m *Model) SetFilter(filter string) {
	m.filter = strings.ToLower(strings.TrimSpace(filter))
}

// Filter returns the active filter.
func (m *Model) Filter() string {
	return m.filter
}

// Rows flattens the materialized tree into renderable rows. With a filter
// active only matching nodes and their ancestors appear, ancestors shown
// expanded regardless of their stored expansion state.
func (m *Model) Rows() []Row {
	roots, ok := m.cache.Cached("")
	if !ok {
		return nil
	}

	var rows []Row
	if m.filter != "" {
		for _, n := range roots {
			if sub, matched := m.filteredRows(n, 0); matched {
				rows = append(rows, sub...)
			}
		}
		return rows
	}

	for _, n := range roots {
		m.appendRows(&rows, n, 0)
	}
	return rows
}

func (m *Model) appendRows(rows *[]Row, n docscope.Node, depth int) {
	*rows = append(*rows, m.row(n, depth))
	if !n.IsDir() || !m.expanded[n.Path] {
		return
	}
	children, ok := m.cache.Cached(n.Path)
	if !ok {
		return
	}
	for _, child := range children {
		m.appendRows(rows, child, depth+1)
	}
}

// filteredRows returns the rows for n's subtree that survive the filter,
// and whether any of them matched.
func (m *Model) filteredRows(n docscope.Node, depth int) ([]Row, bool) {
	selfMatch := strings.Contains(strings.ToLower(n.Name), m.filter)

	var childRows []Row
	if n.IsDir() {
		if children, ok := m.cache.Cached(n.Path); ok {
			for _, child := range children {
				if sub, matched := m.filteredRows(child, depth+1); matched {
					childRows = append(childRows, sub...)
				}
			}
		}
	}

	if !selfMatch && len(childRows) == 0 {
		return nil, false
	}

	row := m.row(n, depth)
	if len(childRows) > 0 {
		row.Expanded = true
	}
	return append([]Row{row}, childRows...), true
}

func (m *Model) row(n docscope.Node, depth int) Row {
	return Row{
		Node:     n,
		Depth:    depth,
		State:    m.engine.StateOf(n),
		Expanded: m.expanded[n.Path],
		Loading:  m.loading[n.Path],
	}
}
