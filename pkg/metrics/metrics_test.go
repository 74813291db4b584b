package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rinkside/crosscheck/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := metrics.NewManager(
			metrics.WithPrometheusRegistry(registry),
			metrics.WithNamespace("testns"),
			metrics.WithSubsystem("testsub"),
		)

		Convey("Then construction registers the run metrics", func() {
			So(m, ShouldNotBeNil)
			families, err := registry.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global recording helpers", t, func() {
		Convey("When recording run activity", func() {
			// The helpers must never panic; values land on the package
			// registry exposed through Handler.
			So(func() {
				metrics.RecordProfileProcessed()
				metrics.RecordEventOutcome("matched")
				metrics.RecordEventOutcome("mismatched")
				metrics.RecordEventOutcome("not_found")
				metrics.RecordResultsLoaded("historical", 100)
				metrics.RecordDuplicateResult()
				metrics.UpdateIndexSize(10, 250)
				metrics.UpdateWorkerCount(4)
				metrics.RecordProfileLatency(1.5)
				metrics.RecordIndexBuildTime(12.0)
				metrics.RecordErrorByComponent("report", "write_failed")
			}, ShouldNotPanic)
		})

		Convey("Then the handler serves the registry", func() {
			So(metrics.Handler(), ShouldNotBeNil)
		})
	})
}
