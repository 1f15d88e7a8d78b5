// Package bloom provides path deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Sizing defaults for directory-tree walks.
const (
	// DefaultExpectedPaths is the expected number of distinct paths one
	// walk visits.
	DefaultExpectedPaths = 10000
	// DefaultFalsePositiveRate is the acceptable rate of paths wrongly
	// reported as already seen.
	DefaultFalsePositiveRate = 0.01
)

// Filter wraps a Bloom filter for path deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewPathFilter creates a filter with the default tree-walk sizing.
func NewPathFilter() *Filter {
	return NewFilter(DefaultExpectedPaths, DefaultFalsePositiveRate)
}

// Add adds a path to the filter.
func (f *Filter) Add(path string) {
	f.f.AddString(path)
}

// Test returns true if the path might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(path string) bool {
	return f.f.TestString(path)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
