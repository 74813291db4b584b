package engine_test

import (
	"context"
	"testing"

	"github.com/rinkside/crosscheck/internal/adapters/repository"
	"github.com/rinkside/crosscheck/internal/domain/model"
	"github.com/rinkside/crosscheck/internal/engine"
	. "github.com/smartystreets/goconvey/convey"
)

func intPtr(n int) *int { return &n }

func buildIndex(ctx context.Context, records ...model.Result) repository.Index {
	return repository.Build(ctx, records)
}

func TestReconcileProfile(t *testing.T) {
	Convey("Given an engine over an index with one skater", t, func() {
		ctx := context.Background()

		profile := model.Profile{
			Name:     "SEARS Liam",
			Category: "Junior Men",
			Events: []model.EventSummary{
				{Name: "2022 Midwest Classic", BestRank: intPtr(1)},
			},
		}

		Convey("When the sole candidate agrees on rank", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "Midwest Classic 2022",
				Date: "2022-03-01", Place: intPtr(1),
			})
			e := engine.New(idx)

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			Convey("Then the event is matched", func() {
				So(report.HasCandidates, ShouldBeTrue)
				So(report.Events, ShouldHaveLength, 1)
				So(report.Events[0].Outcome, ShouldEqual, model.OutcomeMatched)
				So(report.Events[0].Similarity, ShouldBeGreaterThan, 0.3)
				So(report.Events[0].Competition, ShouldEqual, "Midwest Classic 2022")
			})
		})

		Convey("When the sole candidate disagrees on rank", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "Midwest Classic 2022",
				Date: "2022-03-01", Place: intPtr(3),
			})
			e := engine.New(idx)

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			Convey("Then the event is mismatched with both ranks recorded", func() {
				ev := report.Events[0]
				So(ev.Outcome, ShouldEqual, model.OutcomeMismatched)
				So(*ev.StlRank, ShouldEqual, 1)
				So(*ev.UssRank, ShouldEqual, 3)
				So(ev.Similarity, ShouldBeGreaterThan, 0.3)
			})
		})

		Convey("When the only candidate is outside the temporal window", func() {
			// Textually perfect match, but the year differs by 3.
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "2022 Midwest Classic",
				Date: "2025-03-01", Place: intPtr(1),
			})
			e := engine.New(idx)

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			Convey("Then the event is not_found despite the perfect text match", func() {
				ev := report.Events[0]
				So(ev.Outcome, ShouldEqual, model.OutcomeNotFound)
				So(ev.HadCandidates, ShouldBeTrue)
			})
		})

		Convey("When the skater has no indexed results at all", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Sofia Koons", Competition: "2022 Midwest Classic",
				Date: "2022-03-01", Place: intPtr(1),
			})
			e := engine.New(idx)

			multi := model.Profile{
				Name:     "SEARS Liam",
				Category: "Junior Men",
				Events: []model.EventSummary{
					{Name: "2022 Midwest Classic", BestRank: intPtr(1)},
					{Name: "2021 Silver Skates", BestRank: intPtr(2)},
				},
			}
			report := e.ReconcileProfile(ctx, "liam_sears", multi)

			Convey("Then every event is not_found at the skater level", func() {
				So(report.HasCandidates, ShouldBeFalse)
				So(report.Events, ShouldHaveLength, 2)
				for _, ev := range report.Events {
					So(ev.Outcome, ShouldEqual, model.OutcomeNotFound)
					So(ev.HadCandidates, ShouldBeFalse)
				}
			})
		})

		Convey("When the best score does not clear the threshold", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "Atlantic Autumn Sprint Relay Gala",
				Date: "2022-05-01", Place: intPtr(1),
			})
			e := engine.New(idx)

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			Convey("Then the event is not_found with candidates annotated", func() {
				ev := report.Events[0]
				So(ev.Outcome, ShouldEqual, model.OutcomeNotFound)
				So(ev.HadCandidates, ShouldBeTrue)
			})
		})

		Convey("When two candidates tie on similarity", func() {
			idx := buildIndex(ctx,
				model.Result{Skater: "Liam Sears", Competition: "Midwest Classic 2022", Date: "2022-03-01", Place: intPtr(5)},
				model.Result{Skater: "Liam Sears", Competition: "2022 Midwest Classic", Date: "2022-03-02", Place: intPtr(1)},
			)
			e := engine.New(idx)

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			Convey("Then the first-seen candidate wins the tie", func() {
				ev := report.Events[0]
				So(*ev.UssRank, ShouldEqual, 5)
				So(ev.Outcome, ShouldEqual, model.OutcomeMismatched)
			})
		})

		Convey("When a candidate date is malformed", func() {
			// The temporal filter degrades to a no-op for that candidate.
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "Midwest Classic 2022",
				Date: "sometime in spring", Place: intPtr(1),
			})
			e := engine.New(idx)

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			Convey("Then the candidate is still considered and matches", func() {
				So(report.Events[0].Outcome, ShouldEqual, model.OutcomeMatched)
			})
		})

		Convey("When the profile event has no recorded rank", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "Midwest Classic 2022",
				Date: "2022-03-01", Place: intPtr(1),
			})
			e := engine.New(idx)

			noRank := model.Profile{
				Name:     "SEARS Liam",
				Category: "Junior Men",
				Events:   []model.EventSummary{{Name: "2022 Midwest Classic"}},
			}
			report := e.ReconcileProfile(ctx, "liam_sears", noRank)

			Convey("Then rank equality can never hold and the event mismatches", func() {
				ev := report.Events[0]
				So(ev.Outcome, ShouldEqual, model.OutcomeMismatched)
				So(ev.StlRank, ShouldBeNil)
			})
		})

		Convey("When a tighter similarity threshold is configured", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "2022 Midwest Open",
				Date: "2022-03-01", Place: intPtr(1),
			})
			// {2022, midwest, classic} vs {2022, midwest, open}: score 2/3.
			e := engine.New(idx, engine.WithSimilarityThreshold(0.9))

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			So(report.Events[0].Outcome, ShouldEqual, model.OutcomeNotFound)
		})

		Convey("When a wider year tolerance is configured", func() {
			idx := buildIndex(ctx, model.Result{
				Skater: "Liam Sears", Competition: "2022 Midwest Classic",
				Date: "2025-03-01", Place: intPtr(1),
			})
			e := engine.New(idx, engine.WithYearTolerance(3))

			report := e.ReconcileProfile(ctx, "liam_sears", profile)

			So(report.Events[0].Outcome, ShouldEqual, model.OutcomeMatched)
		})
	})
}
