// Package docscope scopes a content-indexing/search feature to a subset of a
// large, lazily-discovered directory tree. A selection is a pair of
// include/exclude path sets with longest-prefix-match semantics; the tree is
// materialized one level at a time, and tri-state (on/off/mixed) indicators
// are derived on demand from the minimal set plus whatever has been loaded.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, http/, cache/).
package docscope
