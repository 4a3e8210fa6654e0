package clock_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kou-isk/youcoder/internal/clock"
)

func TestMilliseconds(t *testing.T) {
	Convey("Given playback positions in seconds", t, func() {
		Convey("Then conversion floors to integer milliseconds", func() {
			So(clock.Milliseconds(1.5), ShouldEqual, 1500)
			So(clock.Milliseconds(3.2), ShouldEqual, 3200)
			So(clock.Milliseconds(0), ShouldEqual, 0)
			So(clock.Milliseconds(0.0009), ShouldEqual, 0)
			So(clock.Milliseconds(59.9999), ShouldEqual, 59999)
		})
	})
}

func TestReported(t *testing.T) {
	Convey("Given a reported clock", t, func() {
		r := clock.NewReported()

		Convey("Then it starts at position zero", func() {
			So(r.PositionSeconds(), ShouldEqual, 0)
		})

		Convey("When the playhead is reported", func() {
			r.Set(12.34)

			Convey("Then reads reflect the latest report", func() {
				So(r.PositionSeconds(), ShouldEqual, 12.34)
			})
		})
	})
}
