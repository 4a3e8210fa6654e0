package model_test

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/kou-isk/youcoder/internal/domain/model"
)

func TestAction(t *testing.T) {
	Convey("Given an action record", t, func() {
		a := model.Action{Team: "A", Action: "Pass", Start: 1500, Labels: []string{"Good"}}

		Convey("Then it starts open", func() {
			So(a.IsOpen(), ShouldBeTrue)
		})

		Convey("When closed", func() {
			a.Close(3200)

			Convey("Then it is no longer open and keeps the end value", func() {
				So(a.IsOpen(), ShouldBeFalse)
				So(*a.End, ShouldEqual, 3200)
			})

			Convey("And an end before start is kept as-is", func() {
				a.Close(100)
				So(*a.End, ShouldEqual, 100)
			})
		})

		Convey("When cloned", func() {
			a.Close(3200)
			c := a.Clone()
			c.Labels[0] = "mutated"
			*c.End = 1

			Convey("Then the original is unaffected", func() {
				So(a.Labels[0], ShouldEqual, "Good")
				So(*a.End, ShouldEqual, 3200)
			})
		})

		Convey("When round-tripped through JSON", func() {
			a.Labels = append(a.Labels, "Zone - Left", "Good")
			payload, err := json.Marshal(a)
			So(err, ShouldBeNil)

			var back model.Action
			So(json.Unmarshal(payload, &back), ShouldBeNil)

			Convey("Then label order survives, duplicates included", func() {
				So(back.Labels, ShouldResemble, []string{"Good", "Zone - Left", "Good"})
			})

			Convey("Then an open record omits end entirely", func() {
				open := model.Action{Team: "A", Action: "Pass", Start: 1}
				raw, err := json.Marshal(open)
				So(err, ShouldBeNil)
				So(string(raw), ShouldNotContainSubstring, "end")
			})
		})
	})

	Convey("Given a timeline", t, func() {
		tl := []model.Action{{Team: "A", Action: "Pass", Start: 1, Labels: []string{"x"}}}

		Convey("When deep-copied", func() {
			cp := model.CloneTimeline(tl)
			cp[0].Labels[0] = "y"

			Convey("Then the source timeline is unaffected", func() {
				So(tl[0].Labels[0], ShouldEqual, "x")
			})
		})

		Convey("When the source is nil", func() {
			Convey("Then the copy is nil too", func() {
				So(model.CloneTimeline(nil), ShouldBeNil)
			})
		})
	})
}
