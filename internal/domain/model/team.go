// Package model contains domain models passed between layers.
package model

// Team is a league participant together with its derived table statistics.
// Everything below Logo is recomputed from the match list and never edited directly.
type Team struct {
	ID      int    `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Coach   string `json:"coach" yaml:"coach"`
	Stadium string `json:"stadium" yaml:"stadium"`
	Founded int    `json:"founded,omitempty" yaml:"founded,omitempty"`
	Logo    string `json:"logo,omitempty" yaml:"logo,omitempty"`

	Points       int      `json:"points" yaml:"points"`
	Wins         int      `json:"wins" yaml:"wins"`
	Draws        int      `json:"draws" yaml:"draws"`
	Losses       int      `json:"losses" yaml:"losses"`
	GoalsFor     int      `json:"goalsFor" yaml:"goalsFor"`
	GoalsAgainst int      `json:"goalsAgainst" yaml:"goalsAgainst"`
	Position     int      `json:"position" yaml:"position"`
	RecentForm   []Result `json:"recentForm" yaml:"recentForm"`
}

// GamesPlayed returns wins + draws + losses.
func (t *Team) GamesPlayed() int {
	return t.Wins + t.Draws + t.Losses
}

// GoalDifference returns goals scored minus goals conceded.
func (t *Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// ResetStats zeroes every derived field, keeping identity and descriptive data.
func (t *Team) ResetStats() {
	t.Points = 0
	t.Wins = 0
	t.Draws = 0
	t.Losses = 0
	t.GoalsFor = 0
	t.GoalsAgainst = 0
	t.Position = 0
	t.RecentForm = []Result{}
}

// Clone returns a deep copy of t.
func (t Team) Clone() Team {
	if t.RecentForm != nil {
		form := make([]Result, len(t.RecentForm))
		copy(form, t.RecentForm)
		t.RecentForm = form
	}
	return t
}

// CloneTeams deep-copies a slice of teams.
func CloneTeams(teams []Team) []Team {
	out := make([]Team, len(teams))
	for i := range teams {
		out[i] = teams[i].Clone()
	}
	return out
}
