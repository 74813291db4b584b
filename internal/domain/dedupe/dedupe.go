// Package dedupe tracks already-seen result fingerprints.
//
// Supplemental result files are concatenated onto the primary list without
// removing duplicates; the deduper only counts exact repeats so the summary
// can surface them as a data-quality figure. Candidate lists keep every
// duplicate record.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen fingerprints.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Size returns the number of distinct fingerprints recorded.
	Size() int64

	// Duplicates returns how many SeenAndRecord calls hit an existing
	// fingerprint.
	Duplicates() int64
}

// inMemoryDeduper implements Deduper with a plain map. The result datasets
// are wholly in memory for one batch pass, so there is no eviction.
type inMemoryDeduper struct {
	mu         sync.Mutex
	seen       map[string]struct{}
	size       atomic.Int64
	duplicates atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		seen: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// SeenAndRecord atomically checks whether id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		d.duplicates.Add(1)
		return true
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

// Size returns the number of distinct fingerprints recorded.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

// Duplicates returns the number of repeat sightings.
func (d *inMemoryDeduper) Duplicates() int64 {
	return d.duplicates.Load()
}
