// Package report renders the run-wide statistics into the two JSON
// artifacts: a summary with rates, per-category breakdowns and capped
// evidence samples, and a detail file with the uncapped per-profile
// counts. Both artifacts are written exactly once, at the end of the run.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rinkside/crosscheck/internal/engine"
)

// Default bound on mismatch entries carried into the summary artifact.
const (
	defaultMismatchCap = 100
)

// Provenance records which result sources fed the run.
type Provenance struct {
	Sources           string `json:"sources"`
	HistoricalResults int    `json:"historical_results"`
	NewResults        int    `json:"new_results"`
	DuplicateResults  int64  `json:"duplicate_results"`
}

// Totals holds the run-wide counters.
type Totals struct {
	Profiles                 int `json:"profiles"`
	ProfilesWithCandidates   int `json:"profiles_with_candidates"`
	ProfilesWithoutCandidate int `json:"profiles_without_candidates"`
	EventsChecked            int `json:"events_checked"`
	Matched                  int `json:"matched"`
	Mismatched               int `json:"mismatched"`
	NotFound                 int `json:"not_found"`
}

// Samples carries the bounded evidence lists. Mismatches above the cap
// are dropped here but still counted in Totals; Note says so.
type Samples struct {
	Matched          []engine.MatchedSample  `json:"matched"`
	Mismatched       []engine.MismatchSample `json:"mismatched"`
	MismatchOverflow int                     `json:"mismatch_overflow"`
	Note             string                  `json:"note,omitempty"`
	NotFound         []engine.NotFoundSample `json:"not_found"`
}

// Summary is the primary artifact of a run.
type Summary struct {
	ValidationDate string                           `json:"validation_date"`
	RunID          string                           `json:"run_id"`
	Provenance     Provenance                       `json:"provenance"`
	Totals         Totals                           `json:"totals"`
	MatchRate      float64                          `json:"match_rate"`
	EventCoverage  float64                          `json:"event_coverage"`
	SkaterRate     float64                          `json:"skater_match_rate"`
	Categories     map[string]*engine.CategoryStats `json:"categories"`
	Samples        Samples                          `json:"samples"`
}

// Detail is the secondary artifact: one uncapped line per profile.
type Detail struct {
	GeneratedAt   string                `json:"generated_at"`
	RunID         string                `json:"run_id"`
	TotalProfiles int                   `json:"total_profiles"`
	Profiles      []engine.ProfileTally `json:"profiles"`
}

// Meta is the run-level metadata stamped into both artifacts.
type Meta struct {
	RunID      string
	Provenance Provenance
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithMismatchCap bounds the mismatch entries in the summary artifact.
func WithMismatchCap(limit int) Option {
	return func(b *Builder) {
		if limit >= 0 {
			b.mismatchCap = limit
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// Builder renders accumulated statistics into artifacts.
type Builder struct {
	mismatchCap int
	now         func() time.Time
}

// NewBuilder creates a Builder with configuration options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		mismatchCap: defaultMismatchCap,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// BuildSummary renders the summary artifact from the accumulator.
//
// Rates are fractions in [0,1] and defined as 0 when their denominator
// is zero: match_rate = matched / (matched + mismatched), event_coverage
// = (matched + mismatched) / events_checked, skater_match_rate =
// profiles_with_candidates / profiles. Mismatch entries beyond the cap
// are truncated; the overflow count and a note record the truncation.
func (b *Builder) BuildSummary(acc *engine.Accumulator, meta Meta) Summary {
	s := Summary{
		ValidationDate: b.now().UTC().Format(time.RFC3339),
		RunID:          meta.RunID,
		Provenance:     meta.Provenance,
		Totals: Totals{
			Profiles:                 acc.TotalProfiles,
			ProfilesWithCandidates:   acc.ProfilesWithCandidates,
			ProfilesWithoutCandidate: acc.ProfilesWithoutCandidate,
			EventsChecked:            acc.EventsChecked,
			Matched:                  acc.Matched,
			Mismatched:               acc.Mismatched,
			NotFound:                 acc.NotFound,
		},
		MatchRate:     ratio(acc.Matched, acc.Matched+acc.Mismatched),
		EventCoverage: ratio(acc.Matched+acc.Mismatched, acc.EventsChecked),
		SkaterRate:    ratio(acc.ProfilesWithCandidates, acc.TotalProfiles),
		Categories:    acc.Categories,
		Samples: Samples{
			Matched:    acc.MatchedSamples,
			Mismatched: acc.Mismatches,
			NotFound:   acc.NotFoundSamples,
		},
	}

	if len(s.Samples.Matched) == 0 {
		s.Samples.Matched = []engine.MatchedSample{}
	}
	if len(s.Samples.NotFound) == 0 {
		s.Samples.NotFound = []engine.NotFoundSample{}
	}

	if len(acc.Mismatches) > b.mismatchCap {
		s.Samples.Mismatched = acc.Mismatches[:b.mismatchCap]
		s.Samples.MismatchOverflow = len(acc.Mismatches) - b.mismatchCap
		s.Samples.Note = fmt.Sprintf("showing first %d of %d mismatches", b.mismatchCap, len(acc.Mismatches))
	}
	if len(s.Samples.Mismatched) == 0 {
		s.Samples.Mismatched = []engine.MismatchSample{}
	}

	return s
}

// BuildDetail renders the detail artifact from the accumulator.
func (b *Builder) BuildDetail(acc *engine.Accumulator, meta Meta) Detail {
	profiles := acc.PerProfile
	if len(profiles) == 0 {
		profiles = []engine.ProfileTally{}
	}

	return Detail{
		GeneratedAt:   b.now().UTC().Format(time.RFC3339),
		RunID:         meta.RunID,
		TotalProfiles: acc.TotalProfiles,
		Profiles:      profiles,
	}
}

// Write marshals an artifact to indented JSON at path.
func Write(path string, artifact any) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return wrapEncodeArtifact(err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return wrapWriteArtifact(err)
	}

	return nil
}

// ratio divides counters as a fraction, defined as 0 on a zero denominator.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
