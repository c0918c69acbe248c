package matchview_test

import (
	"testing"

	"github.com/okian/matchday/internal/domain/matchview"
	"github.com/okian/matchday/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestForTeam(t *testing.T) {
	Convey("Given three teams and their matches", t, func() {
		teams := []model.Team{{ID: 1, Name: "Ashford"}, {ID: 2, Name: "Brimley"}, {ID: 3, Name: "Carrow"}}
		matches := []model.Match{
			{ID: 1, Date: "2024-08-03", HomeTeamID: 1, AwayTeamID: 2, HomeScore: 2, AwayScore: 0},
			{ID: 2, Date: "2024-08-24", HomeTeamID: 3, AwayTeamID: 1, HomeScore: 1, AwayScore: 1},
			{ID: 3, Date: "2024-08-10", HomeTeamID: 2, AwayTeamID: 3, HomeScore: 3, AwayScore: 2},
			{ID: 4, Date: "2024-08-17", HomeTeamID: 2, AwayTeamID: 1, HomeScore: 4, AwayScore: 1},
			{ID: 5, Date: "2024-08-31", HomeTeamID: 1, AwayTeamID: 42, HomeScore: 0, AwayScore: 0},
		}

		Convey("When listing Ashford's matches", func() {
			view := matchview.ForTeam(teams, matches, 1, 0)

			Convey("Then they are newest first", func() {
				ids := []int{}
				for _, fm := range view {
					ids = append(ids, fm.ID)
				}
				So(ids, ShouldResemble, []int{5, 2, 4, 1})
			})

			Convey("And results are relative to Ashford", func() {
				So(view[1].Result, ShouldEqual, model.ResultDraw)
				So(view[1].IsHome, ShouldBeFalse)
				So(view[2].Result, ShouldEqual, model.ResultLoss)
				So(view[3].Result, ShouldEqual, model.ResultWin)
				So(view[3].IsHome, ShouldBeTrue)
			})

			Convey("And unknown opponents get a placeholder name", func() {
				So(view[0].HomeTeam, ShouldEqual, "Ashford")
				So(view[0].AwayTeam, ShouldEqual, matchview.UnknownTeam)
			})
		})

		Convey("When a limit is given", func() {
			view := matchview.ForTeam(teams, matches, 1, 2)

			Convey("Then only the most recent matches are kept", func() {
				So(view, ShouldHaveLength, 2)
				So(view[0].ID, ShouldEqual, 5)
				So(view[1].ID, ShouldEqual, 2)
			})
		})

		Convey("When the team played no matches", func() {
			So(matchview.ForTeam(teams, matches, 77, 0), ShouldBeEmpty)
		})

		Convey("When no team is given", func() {
			So(matchview.ForTeam(teams, matches, 0, 5), ShouldBeEmpty)
		})

		Convey("When there are no matches", func() {
			So(matchview.ForTeam(teams, nil, 1, 0), ShouldBeEmpty)
		})
	})
}

func TestRescore(t *testing.T) {
	Convey("Given an away-perspective draw", t, func() {
		fm := model.FormattedMatch{ID: 1, HomeScore: 1, AwayScore: 1, Result: model.ResultDraw, IsHome: false}

		Convey("When the away side is given the winning score", func() {
			out := matchview.Rescore(fm, 0, 2)

			Convey("Then the result flips to a win for the away side", func() {
				So(out.HomeScore, ShouldEqual, 0)
				So(out.AwayScore, ShouldEqual, 2)
				So(out.Result, ShouldEqual, model.ResultWin)
				So(out.IsHome, ShouldBeFalse)
			})
		})
	})
}
