package docscope

import (
	"sort"
	"strings"
)

// Verdict is the result of querying a PathSet for a single path.
type Verdict int

// Verdicts. Unset means no entry in the ancestor-or-self chain covers the
// path; callers treat Unset as excluded at the root, but the distinction
// lets mixed-state computation look through to descendants.
const (
	VerdictUnset Verdict = iota
	VerdictIncluded
	VerdictExcluded
)

// String returns a human-readable verdict name.
func (v Verdict) String() string {
	switch v {
	case VerdictIncluded:
		return "included"
	case VerdictExcluded:
		return "excluded"
	default:
		return "unset"
	}
}

// Payload is the wire form of a PathSet. The arrays are emitted sorted but
// consumers must treat them as order-independent sets.
type Payload struct {
	Includes []string `json:"includes"`
	Excludes []string `json:"excludes"`
}

// PathSet is the canonical description of a selection scope: two disjoint
// sets of normalized paths with longest-prefix-match semantics. The nearest
// ancestor-or-self entry decides a path's verdict regardless of which set it
// lives in, so an exclusion always overrides an ancestor inclusion for the
// subtree beneath it, and vice versa.
//
// The zero value is not usable; construct with NewPathSet or FromPayload.
// PathSet is not safe for concurrent mutation.
type PathSet struct {
	includes map[string]struct{}
	excludes map[string]struct{}
}

// NewPathSet returns an empty PathSet.
func NewPathSet() *PathSet {
	return &PathSet{
		includes: make(map[string]struct{}),
		excludes: make(map[string]struct{}),
	}
}

// FromPayload builds a PathSet from a wire payload. Entries are normalized;
// a path listed in both arrays lands in excludes (exclusion wins, matching
// the server's forced-exclude precedence).
func FromPayload(p Payload) *PathSet {
	s := NewPathSet()
	for _, raw := range p.Includes {
		s.includes[Normalize(raw)] = struct{}{}
	}
	for _, raw := range p.Excludes {
		path := Normalize(raw)
		delete(s.includes, path)
		s.excludes[path] = struct{}{}
	}
	return s
}

// Normalize converts a path to canonical form: forward slashes, no leading
// or trailing separator, no empty segments. Empty input maps to the root
// sentinel "".
func Normalize(path string) string {
	p := strings.TrimSpace(strings.ReplaceAll(path, `\`, "/"))
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "/")
}

// IsUnderOrEqual reports whether a equals b or lies strictly below b in the
// hierarchy. Every path is under the root sentinel "".
func IsUnderOrEqual(a, b string) bool {
	if a == b || b == "" {
		return true
	}
	return strings.HasPrefix(a, b+"/")
}

// Query returns the verdict of the entry that is an ancestor-or-self of path
// with maximal length, or VerdictUnset when no entry covers the path.
func (s *PathSet) Query(path string) Verdict {
	path = Normalize(path)

	verdict := VerdictUnset
	best := -1
	for e := range s.includes {
		if IsUnderOrEqual(path, e) && len(e) > best {
			best = len(e)
			verdict = VerdictIncluded
		}
	}
	for e := range s.excludes {
		if IsUnderOrEqual(path, e) && len(e) > best {
			best = len(e)
			verdict = VerdictExcluded
		}
	}
	return verdict
}

// SetState records that path and everything below it is included or
// excluded. All entries at or below path are dropped first, so only the
// topmost deviation from the inherited state is ever stored; if the
// remaining ancestor chain already yields the requested verdict, no explicit
// entry is added.
func (s *PathSet) SetState(path string, included bool) {
	path = Normalize(path)

	for e := range s.includes {
		if IsUnderOrEqual(e, path) {
			delete(s.includes, e)
		}
	}
	for e := range s.excludes {
		if IsUnderOrEqual(e, path) {
			delete(s.excludes, e)
		}
	}

	// Only strict ancestors can match now.
	inherited := s.Query(path)
	if (included && inherited == VerdictIncluded) || (!included && inherited == VerdictExcluded) {
		return
	}

	if included {
		s.includes[path] = struct{}{}
	} else {
		s.excludes[path] = struct{}{}
	}
}

// HasEntryUnder reports whether any entry lies strictly below prefix.
func (s *PathSet) HasEntryUnder(prefix string) bool {
	prefix = Normalize(prefix)
	for e := range s.includes {
		if e != prefix && IsUnderOrEqual(e, prefix) {
			return true
		}
	}
	for e := range s.excludes {
		if e != prefix && IsUnderOrEqual(e, prefix) {
			return true
		}
	}
	return false
}

// Len returns the total number of entries across both sets.
func (s *PathSet) Len() int {
	return len(s.includes) + len(s.excludes)
}

// Clone returns an independent copy of the set.
func (s *PathSet) Clone() *PathSet {
	c := NewPathSet()
	for e := range s.includes {
		c.includes[e] = struct{}{}
	}
	for e := range s.excludes {
		c.excludes[e] = struct{}{}
	}
	return c
}

// Payload returns the wire form of the set with both arrays sorted.
func (s *PathSet) Payload() Payload {
	p := Payload{
		Includes: make([]string, 0, len(s.includes)),
		Excludes: make([]string, 0, len(s.excludes)),
	}
	for e := range s.includes {
		p.Includes = append(p.Includes, e)
	}
	for e := range s.excludes {
		p.Excludes = append(p.Excludes, e)
	}
	sort.Strings(p.Includes)
	sort.Strings(p.Excludes)
	return p
}

// Globs returns include/exclude glob patterns ("path/**") for handing the
// scope to a search backend. The root sentinel maps to "**".
func (s *PathSet) Globs() (include, exclude []string) {
	include = make([]string, 0, len(s.includes))
	exclude = make([]string, 0, len(s.excludes))
	for _, e := range s.Payload().Includes {
		include = append(include, globFor(e))
	}
	for _, e := range s.Payload().Excludes {
		exclude = append(exclude, globFor(e))
	}
	return include, exclude
}

func globFor(entry string) string {
	if entry == "" {
		return "**"
	}
	return entry + "/**"
}
