// Package matchview projects raw matches onto a single team's perspective.
package matchview

import (
	"slices"

	"github.com/okian/matchday/internal/domain/model"
)

// UnknownTeam is shown when a match references a team id that is not loaded.
const UnknownTeam = "Unknown Team"

// ForTeam returns teamID's matches newest first. A positive limit keeps only
// the most recent limit matches. teamID 0 means "no team" and yields an empty
// slice.
func ForTeam(teams []model.Team, matches []model.Match, teamID, limit int) []model.FormattedMatch {
	if teamID == 0 || len(matches) == 0 {
		return []model.FormattedMatch{}
	}

	played := make([]model.Match, 0, len(matches))
	for _, m := range matches {
		if m.Involves(teamID) {
			played = append(played, m)
		}
	}
	slices.SortStableFunc(played, func(a, b model.Match) int {
		return b.Time().Compare(a.Time())
	})
	if limit > 0 && len(played) > limit {
		played = played[:limit]
	}

	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.ID] = t.Name
	}

	out := make([]model.FormattedMatch, 0, len(played))
	for _, m := range played {
		out = append(out, Format(names, m, m.HomeTeamID == teamID))
	}
	return out
}

// Format builds the view of m from the home side when isHome is true.
func Format(names map[int]string, m model.Match, isHome bool) model.FormattedMatch {
	return model.FormattedMatch{
		ID:        m.ID,
		Date:      m.Date,
		HomeTeam:  nameOf(names, m.HomeTeamID),
		AwayTeam:  nameOf(names, m.AwayTeamID),
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Result:    model.ResultFor(isHome, m.HomeScore, m.AwayScore),
		IsHome:    isHome,
	}
}

// Rescore overwrites the scores of fm and recomputes its result from the
// perspective it was built with.
func Rescore(fm model.FormattedMatch, homeScore, awayScore int) model.FormattedMatch {
	fm.HomeScore = homeScore
	fm.AwayScore = awayScore
	fm.Result = model.ResultFor(fm.IsHome, homeScore, awayScore)
	return fm
}

func nameOf(names map[int]string, id int) string {
	if n, ok := names[id]; ok {
		return n
	}
	return UnknownTeam
}
