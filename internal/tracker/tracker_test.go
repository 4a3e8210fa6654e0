package tracker_test

import (
	"context"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kou-isk/youcoder/internal/domain/model"
	"github.com/kou-isk/youcoder/internal/tracker"
	"github.com/kou-isk/youcoder/pkg/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Init()
	os.Exit(m.Run())
}

// fakeClock is a settable playback position source.
type fakeClock struct {
	seconds float64
}

func (c *fakeClock) PositionSeconds() float64 { return c.seconds }

// recordingScheduler captures save requests for inspection.
type recordingScheduler struct {
	videoIDs  []string
	timelines [][]model.Action
}

func (r *recordingScheduler) Schedule(videoID string, actions []model.Action) {
	r.videoIDs = append(r.videoIDs, videoID)
	r.timelines = append(r.timelines, actions)
}

// fixedStore serves a canned timeline for every video.
type fixedStore struct {
	actions []model.Action
}

func (f *fixedStore) Load(ctx context.Context, videoID string) []model.Action {
	return f.actions
}

func newSession(c *fakeClock, sched *recordingScheduler) *tracker.TimelineSession {
	opts := []tracker.Option{tracker.WithClock(c)}
	if sched != nil {
		opts = append(opts, tracker.WithScheduler(sched))
	}
	s := tracker.New(opts...)
	s.SetVideo(context.Background(), "video-1")
	return s
}

func TestTimelineSession(t *testing.T) {
	ctx := context.Background()

	Convey("Given a session with an active video", t, func() {
		clk := &fakeClock{}
		s := newSession(clk, nil)

		Convey("When an action is started at 1.5s", func() {
			clk.seconds = 1.5
			s.StartAction(ctx, "TeamA", "Shoot")

			Convey("Then one open record exists with start in milliseconds", func() {
				actions := s.Actions()
				So(actions, ShouldHaveLength, 1)
				So(actions[0].Team, ShouldEqual, "TeamA")
				So(actions[0].Action, ShouldEqual, "Shoot")
				So(actions[0].Start, ShouldEqual, 1500)
				So(actions[0].IsOpen(), ShouldBeTrue)
				So(actions[0].Labels, ShouldBeEmpty)
			})

			Convey("And a label is added, then the action stops at 3.2s", func() {
				s.AddLabel(ctx, "TeamA", "Shoot", "Good")
				clk.seconds = 3.2
				s.StopAction(ctx, "TeamA", "Shoot")

				Convey("Then the record is closed with the label attached", func() {
					actions := s.Actions()
					So(actions, ShouldHaveLength, 1)
					So(actions[0].IsOpen(), ShouldBeFalse)
					So(*actions[0].End, ShouldEqual, 3200)
					So(actions[0].Labels, ShouldResemble, []string{"Good"})
				})
			})
		})

		Convey("When the same action is started twice without a stop", func() {
			s.StartAction(ctx, "A", "Pass")
			clk.seconds = 2
			s.StartAction(ctx, "A", "Pass")

			Convey("Then two independent open records exist", func() {
				actions := s.Actions()
				So(actions, ShouldHaveLength, 2)
				So(actions[0].IsOpen(), ShouldBeTrue)
				So(actions[1].IsOpen(), ShouldBeTrue)
				So(actions[0].Start, ShouldEqual, 0)
				So(actions[1].Start, ShouldEqual, 2000)
			})

			Convey("And stopping closes the most recently opened record", func() {
				clk.seconds = 5
				s.StopAction(ctx, "A", "Pass")

				actions := s.Actions()
				So(actions[0].IsOpen(), ShouldBeTrue)
				So(actions[1].IsOpen(), ShouldBeFalse)
				So(*actions[1].End, ShouldEqual, 5000)

				Convey("And a second stop closes the older one", func() {
					clk.seconds = 6
					s.StopAction(ctx, "A", "Pass")

					actions := s.Actions()
					So(actions[0].IsOpen(), ShouldBeFalse)
					So(*actions[0].End, ShouldEqual, 6000)
				})
			})
		})

		Convey("When stopping an action that was never started", func() {
			s.StartAction(ctx, "A", "Pass")
			before := s.Actions()
			s.StopAction(ctx, "B", "Pass")

			Convey("Then the timeline is unchanged", func() {
				So(s.Actions(), ShouldResemble, before)
			})
		})

		Convey("When labels are added in sequence", func() {
			s.StartAction(ctx, "A", "Pass")
			s.AddLabel(ctx, "A", "Pass", "Good")
			s.AddLabel(ctx, "A", "Pass", "Accurate")

			Convey("Then label order is preserved", func() {
				So(s.Actions()[0].Labels, ShouldResemble, []string{"Good", "Accurate"})
			})

			Convey("And duplicate labels are allowed", func() {
				s.AddLabel(ctx, "A", "Pass", "Good")
				So(s.Actions()[0].Labels, ShouldResemble, []string{"Good", "Accurate", "Good"})
			})
		})

		Convey("When labeling a closed action", func() {
			s.StartAction(ctx, "A", "Pass")
			s.StopAction(ctx, "A", "Pass")
			s.AddLabel(ctx, "A", "Pass", "Late")

			Convey("Then the label is silently rejected", func() {
				So(s.Actions()[0].Labels, ShouldBeEmpty)
			})
		})

		Convey("When the playhead moved backwards between start and stop", func() {
			clk.seconds = 10
			s.StartAction(ctx, "A", "Pass")
			clk.seconds = 4
			s.StopAction(ctx, "A", "Pass")

			Convey("Then end is recorded before start, unclamped", func() {
				a := s.Actions()[0]
				So(a.Start, ShouldEqual, 10000)
				So(*a.End, ShouldEqual, 4000)
			})
		})

		Convey("When deleting a record", func() {
			clk.seconds = 1
			s.StartAction(ctx, "A", "Pass")
			clk.seconds = 2
			s.StartAction(ctx, "A", "Pass")

			Convey("Then the exact (team, action, start) match is removed", func() {
				So(s.DeleteAction(ctx, "A", "Pass", 1000), ShouldBeTrue)

				actions := s.Actions()
				So(actions, ShouldHaveLength, 1)
				So(actions[0].Start, ShouldEqual, 2000)

				Convey("And deleting it again returns false without mutation", func() {
					So(s.DeleteAction(ctx, "A", "Pass", 1000), ShouldBeFalse)
					So(s.Actions(), ShouldHaveLength, 1)
				})
			})

			Convey("Then a mismatched start deletes nothing", func() {
				So(s.DeleteAction(ctx, "A", "Pass", 999), ShouldBeFalse)
				So(s.Actions(), ShouldHaveLength, 2)
			})
		})
	})

	Convey("Given a session with a save scheduler", t, func() {
		clk := &fakeClock{}
		sched := &recordingScheduler{}
		s := newSession(clk, sched)

		Convey("When mutations occur", func() {
			s.StartAction(ctx, "A", "Pass")
			s.AddLabel(ctx, "A", "Pass", "Good")
			s.StopAction(ctx, "A", "Pass")

			Convey("Then each mutation schedules a save for the active video", func() {
				So(sched.videoIDs, ShouldResemble, []string{"video-1", "video-1", "video-1"})
				So(sched.timelines[2][0].IsOpen(), ShouldBeFalse)
			})
		})

		Convey("When a lookup miss occurs", func() {
			s.StopAction(ctx, "A", "Pass")

			Convey("Then no save is scheduled", func() {
				So(sched.videoIDs, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a session without a video clock", t, func() {
		s := tracker.New()
		s.SetVideo(ctx, "video-1")

		Convey("When an action starts", func() {
			s.StartAction(ctx, "A", "Pass")

			Convey("Then the position reads as zero", func() {
				So(s.Actions()[0].Start, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a persisted timeline", t, func() {
		stored := []model.Action{{Team: "A", Action: "Pass", Start: 100, Labels: []string{"Good"}}}
		s := tracker.New(tracker.WithStore(&fixedStore{actions: stored}))

		Convey("When a video becomes active", func() {
			s.SetVideo(ctx, "video-9")

			Convey("Then its timeline is loaded into memory", func() {
				So(s.Actions(), ShouldResemble, stored)
			})

			Convey("And clearing the video drops only the in-memory view", func() {
				s.ClearVideo(ctx)
				So(s.VideoID(), ShouldBeEmpty)
				So(s.Actions(), ShouldBeEmpty)
			})
		})
	})
}
