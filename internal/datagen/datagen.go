// Package datagen builds correlated synthetic profile and result datasets
// for exercising the whole pipeline. Every generated profile gets a known
// mix of events whose results agree, disagree on rank, or are absent from
// the result list, so a run over the dataset has exact expected totals.
package datagen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rinkside/crosscheck/internal/domain/model"
)

// Generation defaults.
const (
	defaultProfiles         = 20
	defaultEventsPerProfile = 3
	generatedYear           = 2021
	generatedDate           = "2021-03-14"
)

// Config controls the shape of a generated dataset.
type Config struct {
	Profiles         int // number of profiles to generate
	EventsPerProfile int // events per profile
	MatchedPerSet    int // events per profile whose result agrees on rank
	MismatchedPerSet int // events per profile whose result disagrees on rank
	// remaining events per profile have no corresponding result at all
}

// Expected holds the exact outcome totals a run over the dataset must
// produce.
type Expected struct {
	Profiles      int
	EventsChecked int
	Matched       int
	Mismatched    int
	NotFound      int
}

// Dataset is a correlated pair of inputs plus the expected run totals.
type Dataset struct {
	Profiles map[string]model.Profile
	Results  []model.Result
	Expected Expected
}

// Option applies a configuration option to the generator Config.
type Option func(*Config)

// WithProfiles sets the number of generated profiles.
func WithProfiles(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Profiles = n
		}
	}
}

// WithEventMix sets how many events per profile are matched, mismatched
// and missing. Matched plus mismatched must not exceed the total.
func WithEventMix(total, matched, mismatched int) Option {
	return func(c *Config) {
		if total > 0 && matched >= 0 && mismatched >= 0 && matched+mismatched <= total {
			c.EventsPerProfile = total
			c.MatchedPerSet = matched
			c.MismatchedPerSet = mismatched
		}
	}
}

// Generate builds a dataset.
//
// Profile names use the surname-first convention ("FAMILY Given") while
// result records carry the natural order ("Given Family"), matching the
// two input formats. Event and competition names share a year token and a
// serial token unique to the event, so each event's own result is always
// its best candidate. Events meant to go unresolved carry no year and no
// shared vocabulary.
func Generate(opts ...Option) Dataset {
	cfg := &Config{
		Profiles:         defaultProfiles,
		EventsPerProfile: defaultEventsPerProfile,
		MatchedPerSet:    1,
		MismatchedPerSet: 1,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	ds := Dataset{
		Profiles: make(map[string]model.Profile, cfg.Profiles),
	}

	serial := 0
	for p := 0; p < cfg.Profiles; p++ {
		given := fmt.Sprintf("Given%03d", p)
		family := fmt.Sprintf("Family%03d", p)

		profile := model.Profile{
			Name:     fmt.Sprintf("%s %s", strings.ToUpper(family), given),
			Category: category(p),
		}

		for e := 0; e < cfg.EventsPerProfile; e++ {
			serial++
			rank := e + 1

			switch {
			case e < cfg.MatchedPerSet:
				name := fmt.Sprintf("%d Classic Series%05d", generatedYear, serial)
				profile.Events = append(profile.Events, event(name, rank))
				ds.Results = append(ds.Results, result(given, family, name, rank))
				ds.Expected.Matched++
			case e < cfg.MatchedPerSet+cfg.MismatchedPerSet:
				name := fmt.Sprintf("%d Classic Series%05d", generatedYear, serial)
				profile.Events = append(profile.Events, event(name, rank))
				ds.Results = append(ds.Results, result(given, family, name, rank+1))
				ds.Expected.Mismatched++
			default:
				name := fmt.Sprintf("Qualifier Round%05d", serial)
				profile.Events = append(profile.Events, event(name, rank))
				ds.Expected.NotFound++
			}
			ds.Expected.EventsChecked++
		}

		ds.Profiles[uuid.NewString()] = profile
		ds.Expected.Profiles++
	}

	return ds
}

func event(name string, rank int) model.EventSummary {
	r := rank
	return model.EventSummary{
		Name:     name,
		BestRank: &r,
		Races:    rank + 2,
		Medal:    model.MedalNone,
	}
}

func result(given, family, competition string, place int) model.Result {
	p := place
	return model.Result{
		Skater:      fmt.Sprintf("%s %s", given, family),
		Competition: competition,
		Date:        generatedDate,
		Place:       &p,
	}
}

func category(i int) string {
	if i%2 == 0 {
		return "Junior Men"
	}
	return "Junior Women"
}
