// Package fs provides a filesystem-backed implementation of docscope.Lister.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docscope/docscope"
)

// DefaultExcludedNames are directory names never exposed in listings. They
// are large or irrelevant to content search and are hidden at every depth.
var DefaultExcludedNames = []string{
	".git", "vendor", ".github", "logs", "node_modules", ".venv", "__pycache__", ".idea",
}

// Ensure Lister implements docscope.Lister at compile time.
var _ docscope.Lister = (*Lister)(nil)

// Lister lists one level of a directory tree rooted at a local path.
// Symlinks are not followed.
type Lister struct {
	root     string
	excluded map[string]bool
}

// Option configures a Lister.
type Option func(*Lister)

// WithExcludedNames replaces the default excluded-name set.
func WithExcludedNames(names []string) Option {
	return func(l *Lister) {
		l.excluded = make(map[string]bool, len(names))
		for _, name := range names {
			l.excluded[name] = true
		}
	}
}

// NewLister creates a Lister rooted at root.
func NewLister(root string, opts ...Option) *Lister {
	l := &Lister{root: root}
	WithExcludedNames(DefaultExcludedNames)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ListChildren returns the entries directly under rel, directories first,
// each group sorted case-insensitively by name. Excluded names and symlinks
// are skipped; a rel escaping the root is rejected with EINVALID.
func (l *Lister) ListChildren(ctx context.Context, rel string) ([]docscope.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel = docscope.Normalize(rel)
	dir, err := l.resolve(rel)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docscope.Errorf(docscope.ENOTFOUND, "directory %q not found", rel)
		}
		return nil, err
	}

	nodes := make([]docscope.Node, 0, len(entries))
	for _, entry := range entries {
		if l.excluded[entry.Name()] || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}

		childRel := entry.Name()
		if rel != "" {
			childRel = rel + "/" + entry.Name()
		}

		node := docscope.Node{
			Name: entry.Name(),
			Path: childRel,
			Kind: docscope.KindFile,
		}
		if entry.IsDir() {
			node.Kind = docscope.KindDir
			node.HasChildren = l.hasVisibleChildren(filepath.Join(dir, entry.Name()))
		}
		nodes = append(nodes, node)
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir() != nodes[j].IsDir() {
			return nodes[i].IsDir()
		}
		return strings.ToLower(nodes[i].Name) < strings.ToLower(nodes[j].Name)
	})
	return nodes, nil
}

// resolve maps rel onto the filesystem and rejects escapes from the root.
func (l *Lister) resolve(rel string) (string, error) {
	if rel == "" {
		return l.root, nil
	}
	for _, part := range strings.Split(rel, "/") {
		if part == ".." {
			return "", docscope.Errorf(docscope.EINVALID, "path %q escapes the tree root", rel)
		}
	}
	return filepath.Join(l.root, filepath.FromSlash(rel)), nil
}

// hasVisibleChildren probes a directory cheaply for at least one entry that
// a listing would expose.
func (l *Lister) hasVisibleChildren(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if l.excluded[entry.Name()] || entry.Type()&fs.ModeSymlink != 0 {
			continue
		}
		return true
	}
	return false
}
