// Package repository defines the result index used to look up candidate
// results for a profile.
package repository

import "github.com/rinkside/crosscheck/internal/domain/model"

// Option applies a configuration option to the inMemoryIndex.
type Option func(*inMemoryIndex)

// WithExpectedSkaters pre-sizes the key map for large result datasets.
func WithExpectedSkaters(count int) Option {
	return func(i *inMemoryIndex) {
		if count > 0 {
			i.byKey = make(map[string][]model.Result, count)
		}
	}
}
