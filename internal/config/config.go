// Package config defines run configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and env vars.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains one reconciliation run's configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// ProfilesPath locates the profile dataset (skater facts with
	// per-event summaries). Required; unreadable input aborts the run.
	ProfilesPath string `koanf:"profiles_path"`

	// ResultsPath locates the primary result dataset. Required.
	ResultsPath string `koanf:"results_path"`

	// SupplementalResultsPath locates the optional newer result dataset.
	// When absent the run proceeds on historical data only.
	SupplementalResultsPath string `koanf:"supplemental_results_path"`

	// SummaryPath and DetailPath locate the two output artifacts.
	SummaryPath string `koanf:"summary_path"`
	DetailPath  string `koanf:"detail_path"`

	// SimilarityThreshold is the minimum competition-name score a best
	// candidate must exceed before ranks are compared.
	SimilarityThreshold float64 `koanf:"similarity_threshold"`

	// YearTolerance bounds the temporal window: candidates whose result
	// year differs from the event year by more than this are skipped.
	YearTolerance int `koanf:"year_tolerance"`

	// Sample caps for the summary artifact.
	MatchedSampleCap  int `koanf:"matched_sample_cap"`
	NotFoundSampleCap int `koanf:"not_found_sample_cap"`
	MismatchReportCap int `koanf:"mismatch_report_cap"`

	// ProgressInterval logs progress every N profiles processed.
	ProgressInterval int `koanf:"progress_interval"`

	// WorkerCount sets the number of reconciliation workers. 1 keeps the
	// pass strictly sequential; higher values fan profiles out per the
	// per-profile decomposition (results stay deterministic).
	WorkerCount int `koanf:"worker_count"`

	// MetricsAddr optionally serves Prometheus metrics during the run,
	// e.g. ":9090". Empty disables the listener.
	MetricsAddr string `koanf:"metrics_addr"`
}

// Default tuning values. The thresholds and caps govern recall/precision
// tradeoffs and are configuration, not literals, on purpose.
const (
	defaultSimilarityThreshold = 0.3
	defaultYearTolerance       = 1
	defaultMatchedSampleCap    = 20
	defaultNotFoundSampleCap   = 50
	defaultMismatchReportCap   = 100
	defaultProgressInterval    = 200
	defaultWorkerCount         = 1
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		ProfilesPath:            "data/skater_profiles.json",
		ResultsPath:             "data/historical_results.json",
		SupplementalResultsPath: "data/new_results.json",
		SummaryPath:             "data/validation_summary.json",
		DetailPath:              "data/validation_detail.json",
		SimilarityThreshold:     defaultSimilarityThreshold,
		YearTolerance:           defaultYearTolerance,
		MatchedSampleCap:        defaultMatchedSampleCap,
		NotFoundSampleCap:       defaultNotFoundSampleCap,
		MismatchReportCap:       defaultMismatchReportCap,
		ProgressInterval:        defaultProgressInterval,
		WorkerCount:             defaultWorkerCount,
		MetricsAddr:             "",
	}
}
