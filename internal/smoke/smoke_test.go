package smoke

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/matchday/internal/adapters/http/api"
	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/pkg/logger"
)

func startService(t *testing.T) (*httptest.Server, *service.Service) {
	t.Helper()
	ctx := context.Background()
	svc := service.New()
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		svc.Stop()
	})
	return srv, svc
}

func TestRun(t *testing.T) {
	Convey("Given a running service over the bundled league", t, func() {
		srv, svc := startService(t)
		before := svc.Standings()

		cfg := &Config{BaseURL: srv.URL, Timeout: 5 * time.Second, MaxScore: 7, Verbose: true}

		Convey("When the smoke flow runs", func() {
			report, err := Run(context.Background(), cfg, logger.Nop())

			Convey("Then every step passes", func() {
				So(err, ShouldBeNil)
				So(report.Teams, ShouldEqual, 8)
				So(report.Steps, ShouldResemble, []string{
					"standings",
					"select",
					"reject out of range score",
					"score round trip",
					"team details round trip",
					"clear selection",
				})
				So(report.Duration, ShouldBeGreaterThan, 0)
			})

			Convey("Then the service is left as it was found", func() {
				So(svc.Standings(), ShouldResemble, before)
				_, selected := svc.SelectedTeam()
				So(selected, ShouldBeFalse)
			})
		})

		Convey("When the assumed score bound is tighter than the service's", func() {
			cfg.MaxScore = 3
			report, err := Run(context.Background(), cfg, logger.Nop())

			Convey("Then the rejection step fails with an unexpected status", func() {
				So(errors.Is(err, ErrUnexpectedStatus), ShouldBeTrue)
				So(report.Steps, ShouldResemble, []string{"standings", "select"})
			})
		})
	})

	Convey("Given an unreachable service", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		Convey("Then Run fails on the first request", func() {
			report, err := Run(context.Background(), &Config{BaseURL: url, Timeout: time.Second}, logger.Nop())
			So(err, ShouldNotBeNil)
			So(report.Steps, ShouldBeEmpty)
		})
	})
}

func TestVerifyStandings(t *testing.T) {
	Convey("Given a consistent two team table", t, func() {
		table := []Team{
			{ID: 1, Name: "A", Position: 1, Points: 3, Wins: 1, GamesPlayed: 1, GoalsFor: 2, GoalsAgainst: 1, GoalDifference: 1},
			{ID: 2, Name: "B", Position: 2, Points: 0, Losses: 1, GamesPlayed: 1, GoalsFor: 1, GoalsAgainst: 2, GoalDifference: -1},
		}

		Convey("Then it verifies", func() {
			So(verifyStandings(table), ShouldBeNil)
		})

		Convey("Then wrong points are reported", func() {
			table[0].Points = 2
			So(errors.Is(verifyStandings(table), ErrInvariant), ShouldBeTrue)
		})

		Convey("Then a position gap is reported", func() {
			table[1].Position = 3
			So(errors.Is(verifyStandings(table), ErrInvariant), ShouldBeTrue)
		})

		Convey("Then unbalanced goals are reported", func() {
			table[0].GoalsFor = 3
			table[0].GoalDifference = 2
			So(errors.Is(verifyStandings(table), ErrInvariant), ShouldBeTrue)
		})
	})

	Convey("Given an empty table", t, func() {
		So(errors.Is(verifyStandings(nil), ErrInvariant), ShouldBeTrue)
	})
}

func TestPrintReport(t *testing.T) {
	Convey("Given a partial report", t, func() {
		var buf bytes.Buffer
		PrintReport(&buf, &Report{Steps: []string{"standings"}, Teams: 8}, ErrMismatch)

		So(buf.String(), ShouldContainSubstring, "ok   standings")
		So(buf.String(), ShouldContainSubstring, "FAIL state mismatch")
		So(buf.String(), ShouldContainSubstring, "teams: 8")
	})
}
