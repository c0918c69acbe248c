package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then the defaults apply", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "league")
				So(manager.subsystem, ShouldEqual, "standings")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.noticeRaises.Inc()

			Convey("Then metric names and labels reflect them", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, mf := range families {
					if mf.GetName() == "test_namespace_test_subsystem_success_notices_total" {
						found = true
						So(mf.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When registering twice on the same registry", func() {
			registry := prometheus.NewRegistry()
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then promauto panics on the duplicate", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When a standings recompute is recorded", func() {
			before := testutil.ToFloat64(globalManager.standingsRecomputes.WithLabelValues("edit"))
			RecordStandingsRecompute("edit", 0.3)

			Convey("Then the trigger counter increases", func() {
				So(testutil.ToFloat64(globalManager.standingsRecomputes.WithLabelValues("edit")), ShouldEqual, before+1)
			})
		})

		Convey("When league size is updated", func() {
			UpdateLeagueSize(8, 28)

			Convey("Then both gauges are set", func() {
				So(testutil.ToFloat64(globalManager.teamsTotal), ShouldEqual, 8)
				So(testutil.ToFloat64(globalManager.matchesTotal), ShouldEqual, 28)
			})
		})

		Convey("When edits and validation failures are recorded", func() {
			before := testutil.ToFloat64(globalManager.edits.WithLabelValues("match", "rejected"))
			failures := testutil.ToFloat64(globalManager.scoreValidationFailures)
			RecordEdit("match", "rejected")
			RecordScoreValidationFailure()

			Convey("Then the counters move together", func() {
				So(testutil.ToFloat64(globalManager.edits.WithLabelValues("match", "rejected")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.scoreValidationFailures), ShouldEqual, failures+1)
			})
		})

		Convey("When the remaining recorders are called", func() {
			Convey("Then none of them panic", func() {
				So(func() {
					RecordDataLoad("success", 12)
					RecordDataLoad("failure", 3)
					RecordFavoriteToggle("set")
					RecordNoticeRaised()
					RecordKVOperation("set", 0.4)
					RecordHTTPRequest("/api/standings", "GET", "200")
					RecordHTTPRequestDuration("/api/standings", "GET", "200", 1.5)
					RecordErrorByComponent("loader", "fetch")
					RecordErrorByType("client_error", "warning")
					RecordErrorByEndpoint("/api/edits/match", "PATCH", "client_error")
					RecordErrorLatency("http", "client_error", 2)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When the registry is gathered", func() {
			families, err := GetRegistry().Gather()

			Convey("Then registered families are exposed", func() {
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestConfigure(t *testing.T) {
	Convey("Given a configured namespace, subsystem and labels", t, func() {
		Configure(
			WithNamespace("matchday"),
			WithSubsystem("table"),
			WithConstLabels(map[string]string{"league": "premier"}),
		)
		defer Configure()

		RecordNoticeRaised()

		Convey("Then the global registry exposes the renamed, labelled series", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)

			var found bool
			for _, mf := range families {
				if mf.GetName() == "matchday_table_success_notices_total" {
					found = true
					label := mf.GetMetric()[0].GetLabel()[0]
					So(label.GetName(), ShouldEqual, "league")
					So(label.GetValue(), ShouldEqual, "premier")
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
