package docscope_test

import (
	"testing"

	"github.com/docscope/docscope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty is root", "", ""},
		{"plain relative path", "a/b/c", "a/b/c"},
		{"backslashes converted", `a\b\c`, "a/b/c"},
		{"leading and trailing slashes stripped", "/a/b/", "a/b"},
		{"surrounding whitespace stripped", "  a/b  ", "a/b"},
		{"empty segments collapsed", "a//b", "a/b"},
		{"bare slash is root", "/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, docscope.Normalize(tt.in))
		})
	}
}

func TestIsUnderOrEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, docscope.IsUnderOrEqual("a", "a"))
	assert.True(t, docscope.IsUnderOrEqual("a/b", "a"))
	assert.True(t, docscope.IsUnderOrEqual("a/b/c", "a"))
	assert.True(t, docscope.IsUnderOrEqual("anything", ""))
	assert.True(t, docscope.IsUnderOrEqual("", ""))

	// Sibling with a shared name prefix is not under.
	assert.False(t, docscope.IsUnderOrEqual("ab", "a"))
	assert.False(t, docscope.IsUnderOrEqual("a", "a/b"))
	assert.False(t, docscope.IsUnderOrEqual("", "a"))
}

func TestPathSet_Query(t *testing.T) {
	t.Parallel()

	t.Run("longest prefix wins regardless of set", func(t *testing.T) {
		t.Parallel()

		set := docscope.FromPayload(docscope.Payload{
			Includes: []string{"a"},
			Excludes: []string{"a/b"},
		})

		assert.Equal(t, docscope.VerdictExcluded, set.Query("a/b/c"))
		assert.Equal(t, docscope.VerdictExcluded, set.Query("a/b"))
		assert.Equal(t, docscope.VerdictIncluded, set.Query("a/x"))
		assert.Equal(t, docscope.VerdictIncluded, set.Query("a"))
	})

	t.Run("no covering entry is unset", func(t *testing.T) {
		t.Parallel()

		set := docscope.FromPayload(docscope.Payload{Includes: []string{"a"}})
		assert.Equal(t, docscope.VerdictUnset, set.Query("b"))
		assert.Equal(t, docscope.VerdictUnset, set.Query(""))
	})

	t.Run("inclusion under an exclusion wins for its subtree", func(t *testing.T) {
		t.Parallel()

		set := docscope.FromPayload(docscope.Payload{
			Includes: []string{"a/b"},
			Excludes: []string{"a"},
		})
		assert.Equal(t, docscope.VerdictIncluded, set.Query("a/b/deep/file.md"))
		assert.Equal(t, docscope.VerdictExcluded, set.Query("a/c"))
	})

	t.Run("root entry covers everything", func(t *testing.T) {
		t.Parallel()

		set := docscope.FromPayload(docscope.Payload{Includes: []string{""}})
		assert.Equal(t, docscope.VerdictIncluded, set.Query("any/path/at/all"))
		assert.Equal(t, docscope.VerdictIncluded, set.Query(""))
	})
}

func TestPathSet_SetState(t *testing.T) {
	t.Parallel()

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		once := docscope.NewPathSet()
		once.SetState("a/b", true)

		twice := docscope.NewPathSet()
		twice.SetState("a/b", true)
		twice.SetState("a/b", true)

		for _, p := range []string{"", "a", "a/b", "a/b/c", "x"} {
			assert.Equal(t, once.Query(p), twice.Query(p), "query %q", p)
		}
		assert.Equal(t, once.Payload(), twice.Payload())
	})

	t.Run("descendant entry omitted when ancestor already implies it", func(t *testing.T) {
		t.Parallel()

		set := docscope.NewPathSet()
		set.SetState("a", true)
		set.SetState("a/b", true)

		payload := set.Payload()
		assert.Equal(t, []string{"a"}, payload.Includes)
		assert.Empty(t, payload.Excludes)
		assert.Equal(t, docscope.VerdictIncluded, set.Query("a/b"))
	})

	t.Run("ancestor toggle discards descendant overrides", func(t *testing.T) {
		t.Parallel()

		set := docscope.NewPathSet()
		set.SetState("a/b", true)
		set.SetState("a/c", false)
		set.SetState("a", true)

		payload := set.Payload()
		assert.Equal(t, []string{"a"}, payload.Includes)
		assert.Empty(t, payload.Excludes)
		assert.Equal(t, docscope.VerdictIncluded, set.Query("a/c"))
	})

	t.Run("exclusion below inclusion is recorded", func(t *testing.T) {
		t.Parallel()

		set := docscope.NewPathSet()
		set.SetState("src", true)
		set.SetState("src/b.py", false)

		assert.Equal(t, docscope.VerdictIncluded, set.Query("src/a.py"))
		assert.Equal(t, docscope.VerdictExcluded, set.Query("src/b.py"))
		assert.Equal(t, docscope.Payload{
			Includes: []string{"src"},
			Excludes: []string{"src/b.py"},
		}, set.Payload())
	})

	t.Run("toggling the root leaves a single root entry", func(t *testing.T) {
		t.Parallel()

		set := docscope.NewPathSet()
		set.SetState("a", true)
		set.SetState("b/c", false)
		set.SetState("", true)

		assert.Equal(t, docscope.Payload{Includes: []string{""}, Excludes: []string{}}, set.Payload())
		assert.Equal(t, 1, set.Len())

		set.SetState("", false)
		assert.Equal(t, docscope.Payload{Includes: []string{}, Excludes: []string{""}}, set.Payload())
	})

	t.Run("toggle on unloaded path still records an entry", func(t *testing.T) {
		t.Parallel()

		set := docscope.NewPathSet()
		set.SetState("never/loaded/dir", false)
		assert.Equal(t, docscope.VerdictExcluded, set.Query("never/loaded/dir/child.txt"))
	})
}

func TestPathSet_RoundTrip(t *testing.T) {
	t.Parallel()

	set := docscope.NewPathSet()
	set.SetState("src", true)
	set.SetState("src/vendor", false)
	set.SetState("docs/guide.md", true)

	restored := docscope.FromPayload(set.Payload())

	probes := []string{
		"", "src", "src/a.py", "src/vendor", "src/vendor/x", "docs",
		"docs/guide.md", "docs/other.md", "unrelated",
	}
	for _, p := range probes {
		assert.Equal(t, set.Query(p), restored.Query(p), "query %q", p)
	}
}

func TestFromPayload_ExcludeWinsOnConflict(t *testing.T) {
	t.Parallel()

	set := docscope.FromPayload(docscope.Payload{
		Includes: []string{"a", "b"},
		Excludes: []string{"a"},
	})
	assert.Equal(t, docscope.VerdictExcluded, set.Query("a"))
	assert.Equal(t, docscope.VerdictIncluded, set.Query("b"))
}

func TestPathSet_HasEntryUnder(t *testing.T) {
	t.Parallel()

	set := docscope.FromPayload(docscope.Payload{
		Includes: []string{"a/b/c"},
		Excludes: []string{"x"},
	})

	assert.True(t, set.HasEntryUnder("a"))
	assert.True(t, set.HasEntryUnder("a/b"))
	assert.True(t, set.HasEntryUnder(""))
	assert.False(t, set.HasEntryUnder("a/b/c"), "entry itself is not strictly under")
	assert.False(t, set.HasEntryUnder("x"))
	assert.False(t, set.HasEntryUnder("z"))
}

func TestPathSet_Globs(t *testing.T) {
	t.Parallel()

	set := docscope.FromPayload(docscope.Payload{
		Includes: []string{"controllers", "services"},
		Excludes: []string{"controllers/legacy"},
	})
	include, exclude := set.Globs()
	assert.Equal(t, []string{"controllers/**", "services/**"}, include)
	assert.Equal(t, []string{"controllers/legacy/**"}, exclude)

	root := docscope.FromPayload(docscope.Payload{Includes: []string{""}})
	include, _ = root.Globs()
	assert.Equal(t, []string{"**"}, include)
}

func TestPathSet_Clone(t *testing.T) {
	t.Parallel()

	set := docscope.NewPathSet()
	set.SetState("a", true)

	clone := set.Clone()
	clone.SetState("a", false)

	require.Equal(t, docscope.VerdictIncluded, set.Query("a"))
	require.Equal(t, docscope.VerdictExcluded, clone.Query("a"))
}
