package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	app "github.com/kou-isk/youcoder/internal/app"
	"github.com/kou-isk/youcoder/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

func newService(dir string) *app.Service {
	return app.New(
		app.WithDBPath(filepath.Join(dir, "youcoder.db")),
		app.WithSessionStorePath(filepath.Join(dir, "session.json")),
	)
}

func TestService(t *testing.T) {
	ctx := context.Background()

	Convey("Given a started service", t, func() {
		dir := t.TempDir()
		svc := newService(dir)
		So(svc.Start(ctx), ShouldBeNil)

		Convey("When a tagging session runs end to end", func() {
			svc.SetVideo(ctx, "video-1")
			svc.ReportPosition(1.5)
			svc.StartAction(ctx, "TeamA", "Shoot")
			svc.AddLabel(ctx, "TeamA", "Shoot", "Good")
			svc.ReportPosition(3.2)
			svc.StopAction(ctx, "TeamA", "Shoot")

			Convey("Then the in-memory timeline is the source of truth", func() {
				actions := svc.Actions()
				So(actions, ShouldHaveLength, 1)
				So(actions[0].Start, ShouldEqual, 1500)
				So(*actions[0].End, ShouldEqual, 3200)
				So(actions[0].Labels, ShouldResemble, []string{"Good"})
				svc.Stop()
			})

			Convey("And the timeline survives a service restart", func() {
				// Stop drains the save queue through the fallback chain.
				svc.Stop()

				restarted := newService(dir)
				So(restarted.Start(ctx), ShouldBeNil)
				restarted.SetVideo(ctx, "video-1")

				actions := restarted.Actions()
				So(actions, ShouldHaveLength, 1)
				So(actions[0].Team, ShouldEqual, "TeamA")
				So(actions[0].Labels, ShouldResemble, []string{"Good"})
				restarted.Stop()
			})
		})

		Convey("When teams are managed", func() {
			svc.AddTeam(ctx, "Home")
			svc.AddTeam(ctx, "Home")
			svc.AddTeam(ctx, "Away")

			Convey("Then the registry stays deduplicated and ordered", func() {
				So(svc.Teams(), ShouldResemble, []string{"Home", "Away"})
				svc.Stop()
			})

			Convey("And teams survive a restart", func() {
				svc.Stop()

				restarted := newService(dir)
				So(restarted.Start(ctx), ShouldBeNil)
				So(restarted.Teams(), ShouldResemble, []string{"Home", "Away"})
				restarted.Stop()
			})
		})

		Convey("When stats are requested", func() {
			svc.SetVideo(ctx, "video-1")
			svc.StartAction(ctx, "A", "Pass")

			stats := svc.GetStats()

			Convey("Then they reflect the session state", func() {
				So(stats["activeVideo"], ShouldEqual, "video-1")
				So(stats["actionCount"], ShouldEqual, 1)
				So(stats["openCount"], ShouldEqual, 1)
				So(stats["instance"], ShouldNotBeEmpty)
				svc.Stop()
			})
		})
	})
}
