package smoke

import "time"

// Config holds configuration for a smoke run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Timeout  time.Duration // HTTP request timeout
	MaxScore int           // Inclusive score bound the service enforces
	Verbose  bool          // Log every request
}

// Team is a standings row as served by the API.
type Team struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Coach          string   `json:"coach"`
	Stadium        string   `json:"stadium"`
	Points         int      `json:"points"`
	Wins           int      `json:"wins"`
	Draws          int      `json:"draws"`
	Losses         int      `json:"losses"`
	GoalsFor       int      `json:"goalsFor"`
	GoalsAgainst   int      `json:"goalsAgainst"`
	Position       int      `json:"position"`
	RecentForm     []string `json:"recentForm"`
	GamesPlayed    int      `json:"gamesPlayed"`
	GoalDifference int      `json:"goalDifference"`
}

// Match is a match from one team's perspective.
type Match struct {
	ID        int    `json:"id"`
	Date      string `json:"date"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Result    string `json:"result"`
	IsHome    bool   `json:"isHome"`
}

// Selection is the body of GET /api/selection.
type Selection struct {
	Team    Team    `json:"team"`
	Matches []Match `json:"matches"`
}

// MatchEdit is a staged score change.
type MatchEdit struct {
	Match     Match `json:"match"`
	HomeScore int   `json:"homeScore"`
	AwayScore int   `json:"awayScore"`
}

// TeamEdit is a staged change of team details.
type TeamEdit struct {
	TeamID  int    `json:"teamId"`
	Coach   string `json:"coach"`
	Stadium string `json:"stadium"`
}

// Report summarises a run.
type Report struct {
	Steps     []string
	Teams     int
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
