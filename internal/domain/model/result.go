package model

// Result is a match outcome seen from one participant.
type Result string

// Result values.
const (
	ResultWin  Result = "W"
	ResultLoss Result = "L"
	ResultDraw Result = "D"
)

// ResultFor returns the outcome for the home side when isHome is true,
// otherwise for the away side.
func ResultFor(isHome bool, homeScore, awayScore int) Result {
	own, other := awayScore, homeScore
	if isHome {
		own, other = homeScore, awayScore
	}
	switch {
	case own > other:
		return ResultWin
	case own < other:
		return ResultLoss
	default:
		return ResultDraw
	}
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case ResultWin:
		return "Win"
	case ResultLoss:
		return "Loss"
	case ResultDraw:
		return "Draw"
	default:
		return "Unknown"
	}
}
