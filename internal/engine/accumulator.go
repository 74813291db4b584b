package engine

import "github.com/rinkside/crosscheck/internal/domain/model"

// Accumulation caps applied while merging profile reports.
const (
	defaultMatchedSampleCap  = 20
	defaultNotFoundSampleCap = 50
)

// MatchedSample is evidence of one agreeing event.
type MatchedSample struct {
	Skater      string  `json:"skater"`
	Event       string  `json:"event"`
	Competition string  `json:"competition"`
	Rank        int     `json:"rank"`
	Similarity  float64 `json:"similarity"`
}

// MismatchSample records one rank disagreement with both sides' ranks.
type MismatchSample struct {
	Skater      string  `json:"skater"`
	Event       string  `json:"event"`
	Competition string  `json:"competition"`
	StlRank     *int    `json:"stl_rank"`
	UssRank     *int    `json:"uss_rank"`
	Similarity  float64 `json:"similarity"`
}

// NotFoundSample is evidence of one event without a usable candidate.
// HadCandidates distinguishes "no data for this person" from "data exists
// but nothing matched".
type NotFoundSample struct {
	Skater        string `json:"skater"`
	Event         string `json:"event"`
	HadCandidates bool   `json:"had_candidates"`
}

// CategoryStats are per-category counters, updated once per profile/event
// during the pass and read-only afterward.
type CategoryStats struct {
	Profiles          int `json:"profiles"`
	ProfilesMatched   int `json:"profiles_matched"`
	ProfilesUnmatched int `json:"profiles_unmatched"`
	EventsChecked     int `json:"events_checked"`
	Matched           int `json:"matched"`
	Mismatched        int `json:"mismatched"`
	NotFound          int `json:"not_found"`
}

// ProfileTally is the uncapped per-profile line of the detail artifact.
type ProfileTally struct {
	ProfileID  string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Matched    int    `json:"matched"`
	Mismatched int    `json:"mismatched"`
	NotFound   int    `json:"not_found"`
}

// Accumulator folds profile reports into the run-wide statistics. It is an
// explicit value merged in deterministic profile order, so the same inputs
// produce the same samples no matter how many workers computed the reports.
type Accumulator struct {
	matchedSampleCap  int
	notFoundSampleCap int

	TotalProfiles            int
	ProfilesWithCandidates   int
	ProfilesWithoutCandidate int

	EventsChecked int
	Matched       int
	Mismatched    int
	NotFound      int

	Categories map[string]*CategoryStats

	MatchedSamples  []MatchedSample
	Mismatches      []MismatchSample // uncapped here; the report truncates
	NotFoundSamples []NotFoundSample

	PerProfile []ProfileTally
}

// AccumulatorOption applies a configuration option to the Accumulator.
type AccumulatorOption func(*Accumulator)

// WithMatchedSampleCap bounds the matched evidence list.
func WithMatchedSampleCap(limit int) AccumulatorOption {
	return func(a *Accumulator) {
		if limit >= 0 {
			a.matchedSampleCap = limit
		}
	}
}

// WithNotFoundSampleCap bounds the not-found evidence list.
func WithNotFoundSampleCap(limit int) AccumulatorOption {
	return func(a *Accumulator) {
		if limit >= 0 {
			a.notFoundSampleCap = limit
		}
	}
}

// NewAccumulator creates an empty accumulator with configuration options.
func NewAccumulator(opts ...AccumulatorOption) *Accumulator {
	a := &Accumulator{
		matchedSampleCap:  defaultMatchedSampleCap,
		notFoundSampleCap: defaultNotFoundSampleCap,
		Categories:        make(map[string]*CategoryStats),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Merge folds one profile report into the accumulator.
func (a *Accumulator) Merge(r ProfileReport) {
	a.TotalProfiles++

	stats, ok := a.Categories[r.Category]
	if !ok {
		stats = &CategoryStats{}
		a.Categories[r.Category] = stats
	}
	stats.Profiles++

	if r.HasCandidates {
		a.ProfilesWithCandidates++
		stats.ProfilesMatched++
	} else {
		a.ProfilesWithoutCandidate++
		stats.ProfilesUnmatched++
	}

	tally := ProfileTally{
		ProfileID: r.ProfileID,
		Name:      r.Name,
		Category:  r.Category,
	}

	for _, ev := range r.Events {
		a.EventsChecked++
		stats.EventsChecked++

		switch ev.Outcome {
		case model.OutcomeMatched:
			a.Matched++
			stats.Matched++
			tally.Matched++
			if len(a.MatchedSamples) < a.matchedSampleCap {
				rank := 0
				if ev.StlRank != nil {
					rank = *ev.StlRank
				}
				a.MatchedSamples = append(a.MatchedSamples, MatchedSample{
					Skater:      r.Name,
					Event:       ev.Event,
					Competition: ev.Competition,
					Rank:        rank,
					Similarity:  ev.Similarity,
				})
			}
		case model.OutcomeMismatched:
			a.Mismatched++
			stats.Mismatched++
			tally.Mismatched++
			a.Mismatches = append(a.Mismatches, MismatchSample{
				Skater:      r.Name,
				Event:       ev.Event,
				Competition: ev.Competition,
				StlRank:     ev.StlRank,
				UssRank:     ev.UssRank,
				Similarity:  ev.Similarity,
			})
		case model.OutcomeNotFound:
			a.NotFound++
			stats.NotFound++
			tally.NotFound++
			if len(a.NotFoundSamples) < a.notFoundSampleCap {
				a.NotFoundSamples = append(a.NotFoundSamples, NotFoundSample{
					Skater:        r.Name,
					Event:         ev.Event,
					HadCandidates: ev.HadCandidates,
				})
			}
		}
	}

	a.PerProfile = append(a.PerProfile, tally)
}
