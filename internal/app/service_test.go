package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rinkside/crosscheck/internal/adapters/source"
	service "github.com/rinkside/crosscheck/internal/app"
	"github.com/rinkside/crosscheck/internal/config"
	"github.com/rinkside/crosscheck/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	_ = logger.SetLevelString("error")
	os.Exit(m.Run())
}

func TestServiceOptions(t *testing.T) {
	Convey("Given a default configuration", t, func() {
		cfg := config.New()

		Convey("When creating a service without options", func() {
			svc := service.New(cfg)

			Convey("Then a run identifier is generated", func() {
				So(svc.RunID(), ShouldNotBeEmpty)
			})
		})

		Convey("When pinning the run identifier", func() {
			svc := service.New(cfg, service.WithRunID("pinned"))

			So(svc.RunID(), ShouldEqual, "pinned")
		})

		Convey("When two services are created", func() {
			a := service.New(cfg)
			b := service.New(cfg)

			Convey("Then their run identifiers differ", func() {
				So(a.RunID(), ShouldNotEqual, b.RunID())
			})
		})
	})
}

func TestServiceFatalInputs(t *testing.T) {
	ctx := context.Background()

	Convey("Given a configuration pointing at a missing profile dataset", t, func() {
		dir := t.TempDir()
		cfg := config.New()
		cfg.ProfilesPath = filepath.Join(dir, "nope.json")
		cfg.ResultsPath = filepath.Join(dir, "nope_either.json")
		cfg.SummaryPath = filepath.Join(dir, "summary.json")
		cfg.DetailPath = filepath.Join(dir, "detail.json")

		Convey("When the service runs", func() {
			err := service.New(cfg).Run(ctx)

			Convey("Then the run aborts before writing any artifact", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, source.ErrReadDataset), ShouldBeTrue)

				_, statErr := os.Stat(cfg.SummaryPath)
				So(os.IsNotExist(statErr), ShouldBeTrue)
			})
		})
	})

	Convey("Given a profile dataset that is not valid JSON", t, func() {
		dir := t.TempDir()
		profilesPath := filepath.Join(dir, "profiles.json")
		So(os.WriteFile(profilesPath, []byte("not json"), 0o644), ShouldBeNil)

		cfg := config.New()
		cfg.ProfilesPath = profilesPath
		cfg.ResultsPath = filepath.Join(dir, "results.json")
		cfg.SummaryPath = filepath.Join(dir, "summary.json")
		cfg.DetailPath = filepath.Join(dir, "detail.json")

		Convey("When the service runs", func() {
			err := service.New(cfg).Run(ctx)

			Convey("Then the parse failure is fatal", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, source.ErrParseDataset), ShouldBeTrue)
			})
		})
	})
}
