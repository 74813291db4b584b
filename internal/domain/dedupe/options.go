// Package dedupe tracks already-seen result fingerprints.
package dedupe

// Option applies a configuration option to the inMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithExpectedSize pre-sizes the fingerprint map for large result lists.
func WithExpectedSize(size int) Option {
	return func(d *inMemoryDeduper) {
		if size > 0 {
			d.seen = make(map[string]struct{}, size)
		}
	}
}
