package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CROSSCHECK_CONFIG is set
//  3. env (prefix CROSSCHECK_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CROSSCHECK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CROSSCHECK_PROFILES_PATH, CROSSCHECK_WORKER_COUNT, ...
	// Map env keys like CROSSCHECK_WORKER_COUNT -> worker_count (flat keys).
	// Underscores are preserved to match koanf tags on the struct.
	envProvider := env.Provider("CROSSCHECK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "crosscheck_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.ProfilesPath == "":
		return fmt.Errorf("%w: profiles_path must not be empty", ErrInvalidConfig)
	case c.ResultsPath == "":
		return fmt.Errorf("%w: results_path must not be empty", ErrInvalidConfig)
	case c.SummaryPath == "":
		return fmt.Errorf("%w: summary_path must not be empty", ErrInvalidConfig)
	case c.DetailPath == "":
		return fmt.Errorf("%w: detail_path must not be empty", ErrInvalidConfig)
	case c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1:
		return fmt.Errorf("%w: similarity_threshold must be in [0,1]", ErrInvalidConfig)
	case c.YearTolerance < 0:
		return fmt.Errorf("%w: year_tolerance must not be negative", ErrInvalidConfig)
	case c.MatchedSampleCap < 0 || c.NotFoundSampleCap < 0 || c.MismatchReportCap < 0:
		return fmt.Errorf("%w: sample caps must not be negative", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1", ErrInvalidConfig)
	}
	return nil
}
