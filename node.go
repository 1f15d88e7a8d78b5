package docscope

import "context"

// Kind distinguishes directory nodes from file nodes.
type Kind string

// Node kinds.
const (
	KindDir  Kind = "dir"
	KindFile Kind = "file"
)

// Node represents a single entry in the lazily-discovered tree.
// Path is relative to the tree root, forward-slash separated, with no
// leading or trailing slash; the empty string denotes the root itself.
type Node struct {
	Name        string `json:"name"`
	Path        string `json:"rel"`
	Kind        Kind   `json:"kind"`
	HasChildren bool   `json:"has_children"`
}

// Root returns the synthetic node for the tree root. The root is always a
// directory and is never produced by a listing.
func Root() Node {
	return Node{Name: "", Path: "", Kind: KindDir, HasChildren: true}
}

// IsDir reports whether the node is a directory.
func (n Node) IsDir() bool {
	return n.Kind == KindDir
}

// Validate returns an error if the node contains invalid fields.
func (n Node) Validate() error {
	if n.Path != "" && n.Name == "" {
		return Errorf(EINVALID, "node name required")
	}
	if n.Kind != KindDir && n.Kind != KindFile {
		return Errorf(EINVALID, "unknown node kind %q", string(n.Kind))
	}
	if n.Path != Normalize(n.Path) {
		return Errorf(EINVALID, "node path %q is not normalized", n.Path)
	}
	return nil
}

// Lister lists the direct children of a directory, one level at a time.
// The listing must be idempotent and side-effect-free.
type Lister interface {
	// ListChildren returns the entries directly under rel, or under the
	// tree root when rel is empty. Returns EINVALID if rel is not a valid
	// relative path within the tree.
	ListChildren(ctx context.Context, rel string) ([]Node, error)
}

// StateService loads and persists the selection state held by the server.
type StateService interface {
	// LoadState retrieves the saved selection.
	LoadState(ctx context.Context) (*PathSet, error)

	// SaveState persists the selection and returns the canonical form the
	// server settled on, which may differ from the submitted one (e.g.
	// directory entries collapsed to concrete file paths).
	SaveState(ctx context.Context, set *PathSet) (*PathSet, error)
}
