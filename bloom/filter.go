// Package bloom provides a probabilistic set of content hashes used to
// skip store lookups when checking uploads for duplicates.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a goroutine-safe Bloom filter over content hashes.
type Filter struct {
	mu     sync.RWMutex
	f      *bloom.BloomFilter
	n      uint
	fpRate float64
}

// NewFilter creates a filter sized for n expected hashes with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f:      bloom.NewWithEstimates(n, fpRate),
		n:      n,
		fpRate: fpRate,
	}
}

// Add records a content hash.
func (f *Filter) Add(hash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(hash)
}

// MaybeContains reports whether hash might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) MaybeContains(hash string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(hash)
}

// Reset empties the filter and adds hashes. Used after deletions, which a
// Bloom filter cannot express.
func (f *Filter) Reset(hashes []string) {
	next := bloom.NewWithEstimates(max(f.n, uint(len(hashes))*2), f.fpRate)
	for _, h := range hashes {
		next.AddString(h)
	}

	f.mu.Lock()
	f.f = next
	f.mu.Unlock()
}

// EstimatedCount returns the approximate number of hashes in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
