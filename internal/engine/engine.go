// Package engine classifies every profile event against the result index.
//
// For each profile, the engine looks up candidate results under the
// profile's normalized name key and classifies each recorded event as
// matched, mismatched or not_found. No error path exists inside the
// classification: malformed dates degrade the temporal filter and absent
// ranks simply never satisfy rank equality.
package engine

import (
	"context"
	"time"

	"github.com/rinkside/crosscheck/internal/adapters/repository"
	"github.com/rinkside/crosscheck/internal/domain/eventyear"
	"github.com/rinkside/crosscheck/internal/domain/model"
	"github.com/rinkside/crosscheck/internal/domain/namekey"
	"github.com/rinkside/crosscheck/internal/domain/textmatch"
	"github.com/rinkside/crosscheck/pkg/metrics"
)

// Default matching parameters; overridable through options.
const (
	defaultSimilarityThreshold = 0.3
	defaultYearTolerance       = 1
)

// EventReport is the classification of a single profile event.
type EventReport struct {
	Event         string        // event name from the profile dataset
	Competition   string        // best candidate's competition name, if any
	Outcome       model.Outcome //
	StlRank       *int          // best rank recorded in the profile dataset
	UssRank       *int          // finishing place of the best candidate
	Similarity    float64       // best candidate's score, 0 when none survived
	HadCandidates bool          // whether the skater had any indexed results
}

// ProfileReport is the classification of one whole profile. Reports are
// independent of each other, which is what allows the per-profile fan-out.
type ProfileReport struct {
	ProfileID     string
	Name          string
	Category      string
	HasCandidates bool
	Events        []EventReport
}

// Engine runs the per-profile classification against a read-only index.
type Engine struct {
	index               repository.Index
	similarityThreshold float64
	yearTolerance       int
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithSimilarityThreshold sets the minimum best-candidate score required
// before ranks are compared.
func WithSimilarityThreshold(threshold float64) Option {
	return func(e *Engine) {
		if threshold >= 0 && threshold <= 1 {
			e.similarityThreshold = threshold
		}
	}
}

// WithYearTolerance sets the temporal window half-width in years.
func WithYearTolerance(tolerance int) Option {
	return func(e *Engine) {
		if tolerance >= 0 {
			e.yearTolerance = tolerance
		}
	}
}

// New constructs an Engine over a built result index.
func New(index repository.Index, opts ...Option) *Engine {
	e := &Engine{
		index:               index,
		similarityThreshold: defaultSimilarityThreshold,
		yearTolerance:       defaultYearTolerance,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// ReconcileProfile classifies every event of one profile.
//
// When the profile's normalized name has no entries in the index, every
// event is not_found at the skater level and no per-event search happens.
// Otherwise each event is evaluated independently: candidates outside the
// temporal window are skipped, the strictly best-scoring survivor is kept
// (first seen wins ties), and only a score above the threshold leads to a
// rank comparison.
func (e *Engine) ReconcileProfile(ctx context.Context, id string, profile model.Profile) ProfileReport {
	start := time.Now()
	defer func() {
		metrics.RecordProfileLatency(float64(time.Since(start).Microseconds()) / 1000.0)
		metrics.RecordProfileProcessed()
	}()

	report := ProfileReport{
		ProfileID: id,
		Name:      profile.Name,
		Category:  profile.Category,
		Events:    make([]EventReport, 0, len(profile.Events)),
	}

	key := namekey.FromSurnameFirst(profile.Name)
	candidates := e.index.Lookup(ctx, key)
	report.HasCandidates = len(candidates) > 0

	if !report.HasCandidates {
		for _, ev := range profile.Events {
			report.Events = append(report.Events, EventReport{
				Event:         ev.Name,
				Outcome:       model.OutcomeNotFound,
				StlRank:       ev.BestRank,
				HadCandidates: false,
			})
			metrics.RecordEventOutcome(string(model.OutcomeNotFound))
		}
		return report
	}

	for _, ev := range profile.Events {
		er := e.classifyEvent(ev, candidates)
		report.Events = append(report.Events, er)
		metrics.RecordEventOutcome(string(er.Outcome))
	}
	return report
}

// classifyEvent finds the best candidate for one event and classifies it.
func (e *Engine) classifyEvent(ev model.EventSummary, candidates []model.Result) EventReport {
	eventYear, hasEventYear := eventyear.FromText(ev.Name)

	var best *model.Result
	bestScore := 0.0
	for i := range candidates {
		c := &candidates[i]

		if hasEventYear {
			if resultYear, ok := eventyear.FromDate(c.Date); ok {
				diff := eventYear - resultYear
				if diff < 0 {
					diff = -diff
				}
				if diff > e.yearTolerance {
					continue
				}
			}
		}

		// Strictly greater keeps the first-seen candidate on ties. The
		// tie-break is input-order dependent and downstream match-rate
		// figures are calibrated against it.
		if score := textmatch.Similarity(ev.Name, c.Competition); score > bestScore {
			bestScore = score
			best = c
		}
	}

	er := EventReport{
		Event:         ev.Name,
		StlRank:       ev.BestRank,
		Similarity:    bestScore,
		HadCandidates: true,
	}

	if best == nil || bestScore <= e.similarityThreshold {
		er.Outcome = model.OutcomeNotFound
		return er
	}

	er.Competition = best.Competition
	er.UssRank = best.Place
	if ev.BestRank != nil && best.Place != nil && *ev.BestRank == *best.Place {
		er.Outcome = model.OutcomeMatched
	} else {
		// Absent or malformed ranks never satisfy equality.
		er.Outcome = model.OutcomeMismatched
	}
	return er
}
