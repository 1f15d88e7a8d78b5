package docscope

// State is a node's derived display state. Unlike a Verdict it is never
// stored: it is recomputed from the PathSet plus the materialized tree on
// every render pass, so children that load after a toggle still inherit
// correctly the first time they appear.
type State int

// Display states. StateMixed is only meaningful for directories whose
// materialized children are not uniform.
const (
	StateExcluded State = iota
	StateIncluded
	StateMixed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIncluded:
		return "included"
	case StateMixed:
		return "mixed"
	default:
		return "excluded"
	}
}

// ChildReader provides read access to the materialized portion of the tree.
// Implemented by cache.Cache; the engine only ever reads.
type ChildReader interface {
	// Cached returns the children of rel if they have been fetched.
	Cached(rel string) ([]Node, bool)
}

// Engine answers selection queries and applies cascading edits. It combines
// the PathSet (single source of truth) with whatever part of the tree has
// been materialized; it never caches a per-node verdict.
type Engine struct {
	set  *PathSet
	tree ChildReader
}

// NewEngine returns an Engine over the given set and materialized tree.
func NewEngine(set *PathSet, tree ChildReader) *Engine {
	if set == nil {
		set = NewPathSet()
	}
	return &Engine{set: set, tree: tree}
}

// Set returns the engine's current PathSet.
func (e *Engine) Set() *PathSet {
	return e.set
}

// Replace adopts a new PathSet wholesale, discarding the previous one.
// Used when reconciling the server's canonical answer after a save.
func (e *Engine) Replace(set *PathSet) {
	if set == nil {
		set = NewPathSet()
	}
	e.set = set
}

// StateOf derives the display state for a node.
//
// Files are binary: the verdict chain decides, with Unset defaulting to
// excluded. A directory with a definite verdict inherits it regardless of
// children (collapsed subtrees follow their nearest entry). Otherwise the
// materialized children are folded: all on (mixed counts as on) reports
// included, all off reports excluded, anything else is mixed. An unloaded
// directory with no covering entry defaults to excluded.
func (e *Engine) StateOf(n Node) State {
	verdict := e.set.Query(n.Path)
	if !n.IsDir() {
		if verdict == VerdictIncluded {
			return StateIncluded
		}
		return StateExcluded
	}

	switch verdict {
	case VerdictIncluded:
		return StateIncluded
	case VerdictExcluded:
		return StateExcluded
	}

	children, ok := e.tree.Cached(n.Path)
	if !ok || len(children) == 0 {
		return StateExcluded
	}

	allOn, allOff := true, true
	for _, child := range children {
		switch e.StateOf(child) {
		case StateIncluded:
			allOff = false
		case StateExcluded:
			allOn = false
		case StateMixed:
			allOff = false
		}
	}
	switch {
	case allOn:
		return StateIncluded
	case allOff:
		return StateExcluded
	default:
		return StateMixed
	}
}

// Toggle sets the state of path and, by the PathSet's prefix semantics, of
// everything beneath it. This is the only mutation entry point; the caller
// re-renders the affected subtree and the ancestor chain afterwards rather
// than patching incrementally, which keeps lazily loaded children correct.
func (e *Engine) Toggle(path string, on bool) {
	e.set.SetState(path, on)
}

// SelectAll includes the whole tree.
func (e *Engine) SelectAll() {
	e.Toggle("", true)
}

// ClearAll excludes the whole tree.
func (e *Engine) ClearAll() {
	e.Toggle("", false)
}
