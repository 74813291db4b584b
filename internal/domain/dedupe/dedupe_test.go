package dedupe_test

import (
	"context"
	"testing"

	"github.com/rinkside/crosscheck/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithExpectedSize(16))

		Convey("When recording a new fingerprint", func() {
			seen := d.SeenAndRecord(ctx, "liam sears|midwest classic|2022-03-01|1")

			Convey("Then it is reported as unseen", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
				So(d.Duplicates(), ShouldEqual, 0)
			})
		})

		Convey("When recording the same fingerprint twice", func() {
			_ = d.SeenAndRecord(ctx, "fp-1")
			seen := d.SeenAndRecord(ctx, "fp-1")

			Convey("Then the repeat is counted, not stored", func() {
				So(seen, ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
				So(d.Duplicates(), ShouldEqual, 1)
			})
		})

		Convey("When recording distinct fingerprints", func() {
			_ = d.SeenAndRecord(ctx, "fp-1")
			_ = d.SeenAndRecord(ctx, "fp-2")
			_ = d.SeenAndRecord(ctx, "fp-3")

			Convey("Then all are stored", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.Duplicates(), ShouldEqual, 0)
			})
		})
	})
}
