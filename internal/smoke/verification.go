package smoke

import (
	"fmt"
	"reflect"
)

// verifyStandings checks the arithmetic every served table must satisfy.
func verifyStandings(teams []Team) error {
	if len(teams) == 0 {
		return fmt.Errorf("%w: empty table", ErrInvariant)
	}

	var goalsFor, goalsAgainst, wins, losses int
	for i, t := range teams {
		if t.Position != i+1 {
			return fmt.Errorf("%w: %s at index %d has position %d", ErrInvariant, t.Name, i, t.Position)
		}
		if t.Points != 3*t.Wins+t.Draws {
			return fmt.Errorf("%w: %s has %d points from %d-%d-%d", ErrInvariant, t.Name, t.Points, t.Wins, t.Draws, t.Losses)
		}
		if t.GamesPlayed != t.Wins+t.Draws+t.Losses {
			return fmt.Errorf("%w: %s played %d but record sums to %d", ErrInvariant, t.Name, t.GamesPlayed, t.Wins+t.Draws+t.Losses)
		}
		if t.GoalDifference != t.GoalsFor-t.GoalsAgainst {
			return fmt.Errorf("%w: %s goal difference %d", ErrInvariant, t.Name, t.GoalDifference)
		}
		if len(t.RecentForm) > 5 {
			return fmt.Errorf("%w: %s has %d form entries", ErrInvariant, t.Name, len(t.RecentForm))
		}
		if i > 0 && teams[i-1].Points < t.Points {
			return fmt.Errorf("%w: %s ranked below a team with fewer points", ErrInvariant, t.Name)
		}
		goalsFor += t.GoalsFor
		goalsAgainst += t.GoalsAgainst
		wins += t.Wins
		losses += t.Losses
	}

	if goalsFor != goalsAgainst {
		return fmt.Errorf("%w: goals for %d != goals against %d", ErrInvariant, goalsFor, goalsAgainst)
	}
	if wins != losses {
		return fmt.Errorf("%w: wins %d != losses %d", ErrInvariant, wins, losses)
	}
	return nil
}

// sameStandings reports whether two tables are identical row for row.
func sameStandings(a, b []Team) error {
	if !reflect.DeepEqual(a, b) {
		return fmt.Errorf("%w: standings changed", ErrMismatch)
	}
	return nil
}
