package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/kou-isk/youcoder/pkg/metrics"
)

func TestMetrics(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording tagging activity", func() {
			So(func() {
				metrics.RecordActionStarted()
				metrics.RecordActionStopped()
				metrics.RecordActionDeleted()
				metrics.RecordLabelAttached()
				metrics.RecordLookupMiss("stop")
			}, ShouldNotPanic)
		})

		Convey("When recording persistence activity", func() {
			So(func() {
				metrics.RecordSave("sqlite")
				metrics.RecordSaveError("sqlite")
				metrics.RecordSaveFallback("session")
				metrics.RecordLoadError("session")
				metrics.UpdateSaveQueueDepth(3)
				metrics.UpdateTeamCount(2)
				metrics.UpdateTimelineSize(5)
			}, ShouldNotPanic)
		})

		Convey("When serving the metrics endpoint", func() {
			metrics.RecordActionStarted()

			rec := httptest.NewRecorder()
			metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the youcoder metrics are exposed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "youcoder_timeline_actions_started_total")
			})
		})
	})

	Convey("Given a manager on a private registry", t, func() {
		Convey("When constructed with options", func() {
			m := metrics.NewManager(
				metrics.WithNamespace("test"),
				metrics.WithSubsystem("suite"),
				metrics.WithRegistry(prometheus.NewRegistry()),
			)

			Convey("Then construction succeeds without duplicate registration", func() {
				So(m, ShouldNotBeNil)
			})
		})
	})
}
