package model

import "time"

// dateLayouts lists the ISO-8601 shapes accepted in match dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Match is a played fixture between two teams referenced by id.
type Match struct {
	ID         int    `json:"id" yaml:"id"`
	Date       string `json:"date" yaml:"date"`
	HomeTeamID int    `json:"homeTeamId" yaml:"homeTeamId"`
	AwayTeamID int    `json:"awayTeamId" yaml:"awayTeamId"`
	HomeScore  int    `json:"homeScore" yaml:"homeScore"`
	AwayScore  int    `json:"awayScore" yaml:"awayScore"`
}

// Involves reports whether teamID played in m.
func (m *Match) Involves(teamID int) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// Time parses Date. Unparsable dates yield the zero time so they sort last.
func (m *Match) Time() time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, m.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CloneMatches copies a slice of matches.
func CloneMatches(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	return out
}

// FormattedMatch is a Match projected onto one team's perspective.
type FormattedMatch struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Result    Result `json:"result"`
	IsHome    bool   `json:"isHome"`
}

// Bundle is the raw payload delivered by a data source.
type Bundle struct {
	Teams   []Team  `json:"teams" yaml:"teams"`
	Matches []Match `json:"matches" yaml:"matches"`
}
