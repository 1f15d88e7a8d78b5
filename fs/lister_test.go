package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates dirs (trailing slash) and empty files under root.
func writeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func TestLister_ListChildren(t *testing.T) {
	t.Parallel()

	t.Run("lists one level with dirs first, case-insensitive order", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root,
			"src/main.go",
			"Docs/guide.md",
			"README.md",
			"empty/",
		)

		lister := fs.NewLister(root)
		nodes, err := lister.ListChildren(context.Background(), "")
		require.NoError(t, err)

		require.Len(t, nodes, 4)
		assert.Equal(t, []string{"Docs", "empty", "src", "README.md"}, names(nodes))

		assert.Equal(t, docscope.KindDir, nodes[0].Kind)
		assert.True(t, nodes[0].HasChildren)
		assert.False(t, nodes[1].HasChildren, "empty directory has no children")
		assert.Equal(t, docscope.KindFile, nodes[3].Kind)
		assert.False(t, nodes[3].HasChildren)
	})

	t.Run("child paths are root-relative", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, "a/b/c.txt")

		lister := fs.NewLister(root)
		nodes, err := lister.ListChildren(context.Background(), "a/b")
		require.NoError(t, err)

		require.Len(t, nodes, 1)
		assert.Equal(t, "a/b/c.txt", nodes[0].Path)
		assert.Equal(t, "c.txt", nodes[0].Name)
	})

	t.Run("excluded names are hidden at any depth", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root,
			"src/ok.go",
			".git/config",
			"vendor/dep/dep.go",
			"src/__pycache__/x.pyc",
		)

		lister := fs.NewLister(root)

		nodes, err := lister.ListChildren(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"src"}, names(nodes))

		nodes, err = lister.ListChildren(context.Background(), "src")
		require.NoError(t, err)
		assert.Equal(t, []string{"ok.go"}, names(nodes))
	})

	t.Run("has_children ignores entries a listing would hide", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, "only/.git/config")

		lister := fs.NewLister(root)
		nodes, err := lister.ListChildren(context.Background(), "")
		require.NoError(t, err)

		require.Len(t, nodes, 1)
		assert.False(t, nodes[0].HasChildren)
	})

	t.Run("rejects escape from the root", func(t *testing.T) {
		t.Parallel()

		lister := fs.NewLister(t.TempDir())
		_, err := lister.ListChildren(context.Background(), "../outside")
		require.Error(t, err)
		assert.Equal(t, docscope.EINVALID, docscope.ErrorCode(err))
	})

	t.Run("missing directory is not found", func(t *testing.T) {
		t.Parallel()

		lister := fs.NewLister(t.TempDir())
		_, err := lister.ListChildren(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, docscope.ENOTFOUND, docscope.ErrorCode(err))
	})

	t.Run("custom excluded names", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		writeTree(t, root, "keep/a.txt", "skip/b.txt")

		lister := fs.NewLister(root, fs.WithExcludedNames([]string{"skip"}))
		nodes, err := lister.ListChildren(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, names(nodes))
	})
}

func names(nodes []docscope.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}
