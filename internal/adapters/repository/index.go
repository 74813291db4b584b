// Package repository defines the result index used to look up candidate
// results for a profile.
package repository

import (
	"context"
	"time"

	"github.com/rinkside/crosscheck/internal/domain/model"
	"github.com/rinkside/crosscheck/internal/domain/namekey"
	"github.com/rinkside/crosscheck/pkg/metrics"
)

// Index provides read access to result records grouped by normalized
// skater key. It is built once per run and treated as read-only afterward.
type Index interface {
	// Lookup returns every result record for the given normalized key.
	// Unknown keys yield an empty slice, never nil and never an error.
	Lookup(ctx context.Context, key string) []model.Result

	// Skaters returns the number of distinct normalized keys.
	Skaters(ctx context.Context) int

	// Results returns the total number of indexed result records.
	Results(ctx context.Context) int
}

// inMemoryIndex implements Index with a plain map keyed by normalized name.
type inMemoryIndex struct {
	byKey   map[string][]model.Result
	results int
}

// Build groups result records by the normalized form of their skater name.
// Construction is O(n); record order within a key follows input order, which
// the engine's first-seen tie-break depends on.
func Build(ctx context.Context, records []model.Result, opts ...Option) Index {
	start := time.Now()

	idx := &inMemoryIndex{
		byKey: make(map[string][]model.Result),
	}

	for _, opt := range opts {
		opt(idx)
	}

	for _, r := range records {
		key := namekey.Normalize(r.Skater)
		idx.byKey[key] = append(idx.byKey[key], r)
	}
	idx.results = len(records)

	metrics.UpdateIndexSize(len(idx.byKey), idx.results)
	metrics.RecordIndexBuildTime(float64(time.Since(start).Milliseconds()))

	return idx
}

// Lookup returns every result record for the given normalized key.
func (i *inMemoryIndex) Lookup(_ context.Context, key string) []model.Result {
	if records, ok := i.byKey[key]; ok {
		return records
	}
	return []model.Result{}
}

// Skaters returns the number of distinct normalized keys.
func (i *inMemoryIndex) Skaters(_ context.Context) int {
	return len(i.byKey)
}

// Results returns the total number of indexed result records.
func (i *inMemoryIndex) Results(_ context.Context) int {
	return i.results
}
