// Package source reads the input dataset snapshots.
//
// All reads happen once at the start of the run. The profile and primary
// result datasets are required: any read or parse failure there is fatal and
// aborts the run before artifacts are written. The supplemental result
// dataset is optional: when its file is missing the run proceeds on
// historical data only.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rinkside/crosscheck/internal/domain/model"
	"github.com/rinkside/crosscheck/pkg/metrics"
)

// Source labels for provenance and metrics.
const (
	SourceHistorical = "historical"
	SourceNew        = "new"
)

// resultFile mirrors the result dataset shape on disk.
type resultFile struct {
	Results []model.Result `json:"results"`
}

// LoadProfiles reads the profile dataset: a mapping from profile identifier
// to a profile record with per-event summaries.
func LoadProfiles(_ context.Context, path string) (map[string]model.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		metrics.RecordErrorByComponent("source", "read_profiles")
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDataset, path, err)
	}

	profiles := make(map[string]model.Profile)
	if err := json.Unmarshal(data, &profiles); err != nil {
		metrics.RecordErrorByComponent("source", "parse_profiles")
		return nil, fmt.Errorf("%w: %s: %w", ErrParseDataset, path, err)
	}
	return profiles, nil
}

// LoadResults reads a required result dataset.
func LoadResults(_ context.Context, path string) ([]model.Result, error) {
	records, err := readResultFile(path)
	if err != nil {
		metrics.RecordErrorByComponent("source", "load_results")
		return nil, err
	}
	metrics.RecordResultsLoaded(SourceHistorical, len(records))
	return records, nil
}

// LoadSupplemental reads the optional newer result dataset. A missing file
// is not an error: it returns (nil, false, nil) and the run records
// "historical only" provenance. Read or parse failures on a file that does
// exist are still fatal.
func LoadSupplemental(_ context.Context, path string) ([]model.Result, bool, error) {
	if path == "" {
		return nil, false, nil
	}
	records, err := readResultFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		metrics.RecordErrorByComponent("source", "load_supplemental")
		return nil, false, err
	}
	metrics.RecordResultsLoaded(SourceNew, len(records))
	return records, true, nil
}

func readResultFile(path string) ([]model.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDataset, path, err)
	}

	var f resultFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseDataset, path, err)
	}
	return f.Results, nil
}
