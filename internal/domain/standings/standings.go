// Package standings folds match results into a ranked league table.
//
// Compute is pure: it never mutates its inputs and always rebuilds every
// derived statistic from scratch.
package standings

import (
	"cmp"
	"slices"

	"github.com/okian/matchday/internal/domain/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FormLength caps the recent-form sequence of each team.
const FormLength = 5

// Points awarded per outcome.
const (
	pointsWin  = 3
	pointsDraw = 1
)

// Compute returns a ranked copy of teams with statistics derived from matches.
//
// Ordering: points desc, goal difference desc, goals for desc, name asc
// (locale-aware), id asc. Positions are 1-based and strictly increasing.
// Matches referencing an unknown team are skipped. Duplicate team ids keep
// the first occurrence.
func Compute(teams []model.Team, matches []model.Match) []model.Team {
	table := make([]model.Team, 0, len(teams))
	index := make(map[int]int, len(teams))
	for _, t := range teams {
		if _, dup := index[t.ID]; dup {
			continue
		}
		row := t.Clone()
		row.ResetStats()
		index[t.ID] = len(table)
		table = append(table, row)
	}

	// form is accumulated in match-list order; the tail is the most recent.
	forms := make([][]model.Result, len(table))
	for _, m := range matches {
		hi, okHome := index[m.HomeTeamID]
		ai, okAway := index[m.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		home, away := &table[hi], &table[ai]

		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		homeResult := model.ResultFor(true, m.HomeScore, m.AwayScore)
		awayResult := model.ResultFor(false, m.HomeScore, m.AwayScore)
		tally(home, homeResult)
		tally(away, awayResult)
		forms[hi] = append(forms[hi], homeResult)
		forms[ai] = append(forms[ai], awayResult)
	}

	for i := range table {
		table[i].RecentForm = lastN(forms[i], FormLength)
		table[i].Points = table[i].Wins*pointsWin + table[i].Draws*pointsDraw
	}

	Sort(table)
	return table
}

// Sort orders table by the tie-break chain and assigns positions in place.
func Sort(table []model.Team) {
	col := collate.New(language.English)
	slices.SortStableFunc(table, func(a, b model.Team) int {
		return compare(col, &a, &b)
	})
	for i := range table {
		table[i].Position = i + 1
	}
}

// compare returns a negative number when a ranks above b.
func compare(col *collate.Collator, a, b *model.Team) int {
	if c := cmp.Compare(b.Points, a.Points); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalDifference(), a.GoalDifference()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.GoalsFor, a.GoalsFor); c != 0 {
		return c
	}
	if c := col.CompareString(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func tally(t *model.Team, r model.Result) {
	switch r {
	case model.ResultWin:
		t.Wins++
	case model.ResultLoss:
		t.Losses++
	default:
		t.Draws++
	}
}

// lastN returns a copy of the last n entries of s in their original order.
func lastN(s []model.Result, n int) []model.Result {
	if len(s) > n {
		s = s[len(s)-n:]
	}
	out := make([]model.Result, len(s))
	copy(out, s)
	return out
}
