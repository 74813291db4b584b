// Package model contains domain records passed between layers.
package model

// Medal is the podium outcome recorded for an event summary.
type Medal string

// Medal values as they appear in the profile dataset.
const (
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
	MedalNone   Medal = "none"
)

// EventSummary is one competition entry inside a profile record.
// BestRank is nil when the source never recorded a rank.
type EventSummary struct {
	Name       string `json:"name"`
	BestRank   *int   `json:"best_rank"`
	Races      int    `json:"races"`
	MadeFinals bool   `json:"made_finals"`
	Medal      Medal  `json:"medal"`
}

// Profile is a dataset-A record: one skater with per-event summaries.
// Name is in "LAST First..." order.
type Profile struct {
	Name     string         `json:"name"`
	Category string         `json:"category"`
	Events   []EventSummary `json:"events"`
}

// Result is a dataset-B record: a single race result.
// Skater is in "First Last" order; Date is an ISO-like string and may be
// malformed; Place is nil when the source never recorded one.
type Result struct {
	Skater      string `json:"skater"`
	Competition string `json:"competition"`
	Date        string `json:"date"`
	Place       *int   `json:"place"`
}

// Outcome classifies one checked event.
type Outcome string

// The three classification outcomes. Across a whole run their counts sum
// to the total number of events checked.
const (
	OutcomeMatched    Outcome = "matched"
	OutcomeMismatched Outcome = "mismatched"
	OutcomeNotFound   Outcome = "not_found"
)
