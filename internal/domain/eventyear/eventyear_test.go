package eventyear_test

import (
	"testing"

	"github.com/rinkside/crosscheck/internal/domain/eventyear"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromText(t *testing.T) {
	Convey("Given free-text event names", t, func() {
		Convey("When the year leads the name", func() {
			year, ok := eventyear.FromText("2021 Chicago Silver Skates")
			So(ok, ShouldBeTrue)
			So(year, ShouldEqual, 2021)
		})

		Convey("When the year is embedded in a date range", func() {
			year, ok := eventyear.FromText("16.10. - 16.10.2021")
			So(ok, ShouldBeTrue)
			So(year, ShouldEqual, 2021)
		})

		Convey("When several years appear, the first wins", func() {
			year, ok := eventyear.FromText("2019 qualifier for 2020 nationals")
			So(ok, ShouldBeTrue)
			So(year, ShouldEqual, 2019)
		})

		Convey("When no year is present", func() {
			_, ok := eventyear.FromText("no year here")
			So(ok, ShouldBeFalse)
		})

		Convey("When a 4-digit number does not start with 20", func() {
			_, ok := eventyear.FromText("heat 1999 invitational")
			So(ok, ShouldBeFalse)
		})

		Convey("When the input is empty", func() {
			_, ok := eventyear.FromText("")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestFromDate(t *testing.T) {
	Convey("Given result dates", t, func() {
		Convey("When the date is well-formed", func() {
			year, ok := eventyear.FromDate("2022-03-01")
			So(ok, ShouldBeTrue)
			So(year, ShouldEqual, 2022)
		})

		Convey("When the date is a bare year", func() {
			year, ok := eventyear.FromDate("2022")
			So(ok, ShouldBeTrue)
			So(year, ShouldEqual, 2022)
		})

		Convey("When the date is malformed", func() {
			_, ok := eventyear.FromDate("n/a")
			So(ok, ShouldBeFalse)
		})

		Convey("When the date is too short", func() {
			_, ok := eventyear.FromDate("22")
			So(ok, ShouldBeFalse)
		})

		Convey("When the date is empty", func() {
			_, ok := eventyear.FromDate("")
			So(ok, ShouldBeFalse)
		})
	})
}
