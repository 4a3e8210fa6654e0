package logger_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kou-isk/youcoder/pkg/logger"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		ctx := context.Background()

		Convey("Then the global logger is available", func() {
			So(logger.Get(), ShouldNotBeNil)
		})

		Convey("Then named loggers can be derived", func() {
			l := logger.Named("tracker")
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(ctx, "test message", logger.String("k", "v"), logger.Int("n", 1))
			}, ShouldNotPanic)
		})

		Convey("When setting levels from strings", func() {
			Convey("Then known levels are accepted", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("INFO"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("Then unknown levels are rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
