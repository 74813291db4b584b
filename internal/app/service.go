// Package service runs one reconciliation pass end to end: load the
// datasets, count duplicate results, build the index, classify every
// profile and write the two report artifacts.
package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/rinkside/crosscheck/internal/adapters/mq/queue"
	"github.com/rinkside/crosscheck/internal/adapters/mq/worker"
	"github.com/rinkside/crosscheck/internal/adapters/repository"
	"github.com/rinkside/crosscheck/internal/adapters/source"
	"github.com/rinkside/crosscheck/internal/config"
	"github.com/rinkside/crosscheck/internal/domain/dedupe"
	"github.com/rinkside/crosscheck/internal/domain/model"
	"github.com/rinkside/crosscheck/internal/engine"
	"github.com/rinkside/crosscheck/internal/report"
	"github.com/rinkside/crosscheck/pkg/logger"
	"github.com/rinkside/crosscheck/pkg/metrics"
)

// Provenance source labels surfaced in the summary artifact.
const (
	provenanceHistoricalOnly = "historical only"
	provenanceWithNew        = "historical + new"
)

// Service runs a single batch reconciliation pass.
type Service struct {
	cfg   *config.Config
	runID string

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRunID pins the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.runID = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Service for one run of the given configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		runID:  uuid.NewString(),
		logger: logger.Get().Named("service"),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RunID returns the identifier stamped into artifacts and logs.
func (s *Service) RunID() string {
	return s.runID
}

// Run executes the whole pass. Only unreadable or unparseable required
// inputs and artifact write failures return an error; everything else
// degrades into the not_found/mismatched outcome classes.
func (s *Service) Run(ctx context.Context) error {
	start := time.Now()
	s.logger.Info(ctx, "starting reconciliation run",
		logger.String("run_id", s.runID),
		logger.Int("worker_count", s.cfg.WorkerCount),
	)

	profiles, err := source.LoadProfiles(ctx, s.cfg.ProfilesPath)
	if err != nil {
		return err
	}

	historical, err := source.LoadResults(ctx, s.cfg.ResultsPath)
	if err != nil {
		return err
	}

	supplemental, hasNew, err := source.LoadSupplemental(ctx, s.cfg.SupplementalResultsPath)
	if err != nil {
		return err
	}

	prov := report.Provenance{
		Sources:           provenanceHistoricalOnly,
		HistoricalResults: len(historical),
	}
	if hasNew {
		prov.Sources = provenanceWithNew
		prov.NewResults = len(supplemental)
	}

	// Supplemental records are concatenated as-is. Duplicates stay in the
	// candidate lists; the deduper only counts them for the provenance block.
	records := append(historical, supplemental...)
	prov.DuplicateResults = countDuplicates(ctx, records)

	s.logger.Info(ctx, "datasets loaded",
		logger.Int("profiles", len(profiles)),
		logger.Int("results", len(records)),
		logger.String("sources", prov.Sources),
		logger.Int64("duplicate_results", prov.DuplicateResults),
	)

	index := repository.Build(ctx, records, repository.WithExpectedSkaters(len(profiles)))
	s.logger.Info(ctx, "result index built",
		logger.Int("skaters", index.Skaters(ctx)),
		logger.Int("results", index.Results(ctx)),
	)

	eng := engine.New(index,
		engine.WithSimilarityThreshold(s.cfg.SimilarityThreshold),
		engine.WithYearTolerance(s.cfg.YearTolerance),
	)

	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	acc := engine.NewAccumulator(
		engine.WithMatchedSampleCap(s.cfg.MatchedSampleCap),
		engine.WithNotFoundSampleCap(s.cfg.NotFoundSampleCap),
	)

	if s.cfg.WorkerCount > 1 {
		err = s.reconcileParallel(ctx, eng, profiles, ids, acc)
	} else {
		err = s.reconcileSequential(ctx, eng, profiles, ids, acc)
	}
	if err != nil {
		return err
	}

	builder := report.NewBuilder(report.WithMismatchCap(s.cfg.MismatchReportCap))
	meta := report.Meta{RunID: s.runID, Provenance: prov}

	summary := builder.BuildSummary(acc, meta)
	if err := report.Write(s.cfg.SummaryPath, summary); err != nil {
		return err
	}
	if err := report.Write(s.cfg.DetailPath, builder.BuildDetail(acc, meta)); err != nil {
		return err
	}

	s.logger.Info(ctx, "reconciliation run finished",
		logger.String("run_id", s.runID),
		logger.Int("profiles", acc.TotalProfiles),
		logger.Int("events_checked", acc.EventsChecked),
		logger.Int("matched", acc.Matched),
		logger.Int("mismatched", acc.Mismatched),
		logger.Int("not_found", acc.NotFound),
		logger.Float64("match_rate", summary.MatchRate),
		logger.Float64("event_coverage", summary.EventCoverage),
		logger.String("duration", time.Since(start).String()),
	)

	return nil
}

// reconcileSequential classifies profiles one by one in sorted ID order.
func (s *Service) reconcileSequential(ctx context.Context, eng *engine.Engine, profiles map[string]model.Profile, ids []string, acc *engine.Accumulator) error {
	for i, id := range ids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		acc.Merge(eng.ReconcileProfile(ctx, id, profiles[id]))
		s.logProgress(ctx, i+1, len(ids))
	}
	return nil
}

// reconcileParallel fans profiles out to a worker pool and merges the
// reports back in sorted ID order, so samples and caps come out the same
// as a sequential pass.
func (s *Service) reconcileParallel(ctx context.Context, eng *engine.Engine, profiles map[string]model.Profile, ids []string, acc *engine.Accumulator) error {
	q := queue.NewInMemoryQueue(queue.WithCapacity(len(ids) + 1))
	for _, id := range ids {
		if !q.Enqueue(ctx, queue.Job{ProfileID: id, Profile: profiles[id]}) {
			metrics.RecordErrorByComponent("service", "enqueue")
			return ctx.Err()
		}
	}
	if err := q.Close(); err != nil {
		return err
	}

	pool := worker.NewPool(s.cfg.WorkerCount, q, eng)
	pool.Start(ctx)

	reports := make(map[string]engine.ProfileReport, len(ids))
	for r := range pool.Reports() {
		reports[r.ProfileID] = r
		s.logProgress(ctx, len(reports), len(ids))
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		acc.Merge(reports[id])
	}
	return nil
}

func (s *Service) logProgress(ctx context.Context, done, total int) {
	if s.cfg.ProgressInterval <= 0 {
		return
	}
	if done%s.cfg.ProgressInterval == 0 || done == total {
		s.logger.Info(ctx, "reconciliation progress",
			logger.String("profiles", strconv.Itoa(done)+"/"+strconv.Itoa(total)),
		)
	}
}

// countDuplicates counts exact repeats over skater, competition, date and
// place. Nil places fingerprint as "-" so two rank-less records of the same
// event still collide.
func countDuplicates(ctx context.Context, records []model.Result) int64 {
	d := dedupe.NewInMemoryDeduper(dedupe.WithExpectedSize(len(records)))
	for i := range records {
		r := &records[i]
		place := "-"
		if r.Place != nil {
			place = strconv.Itoa(*r.Place)
		}
		if d.SeenAndRecord(ctx, r.Skater+"|"+r.Competition+"|"+r.Date+"|"+place) {
			metrics.RecordDuplicateResult()
		}
	}
	return d.Duplicates()
}
