// Package smoke drives a running league service through its HTTP API and
// checks that reads, edits and validation behave end to end.
package smoke

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/matchday/pkg/logger"
)

// Run executes the smoke flow against cfg.BaseURL:
//  1. fetch and verify the standings
//  2. select the leader and read its matches
//  3. stage an out of range score and expect the save to be rejected
//  4. save a valid score, then restore the original one
//  5. edit and restore the team's coach
func Run(ctx context.Context, cfg *Config, log logger.Logger) (*Report, error) {
	report := &Report{StartTime: time.Now()}
	defer func() {
		report.EndTime = time.Now()
		report.Duration = report.EndTime.Sub(report.StartTime)
	}()

	c := newClient(cfg, log)
	step := func(name string) {
		report.Steps = append(report.Steps, name)
		log.Info(ctx, "step passed", logger.String("step", name))
	}

	var baseline []Team
	if err := c.do(ctx, http.MethodGet, "/api/standings", nil, &baseline, http.StatusOK); err != nil {
		return report, err
	}
	if err := verifyStandings(baseline); err != nil {
		return report, err
	}
	report.Teams = len(baseline)
	step("standings")

	leader := baseline[0]
	teamPath := "/api/teams/" + strconv.Itoa(leader.ID)
	if err := c.do(ctx, http.MethodPost, teamPath+"/select", nil, nil, http.StatusOK); err != nil {
		return report, err
	}
	var sel Selection
	if err := c.do(ctx, http.MethodGet, "/api/selection", nil, &sel, http.StatusOK); err != nil {
		return report, err
	}
	if sel.Team.ID != leader.ID {
		return report, fmt.Errorf("%w: selected %d, want %d", ErrMismatch, sel.Team.ID, leader.ID)
	}
	if len(sel.Matches) == 0 {
		return report, fmt.Errorf("%w: %s has no matches", ErrMismatch, leader.Name)
	}
	step("select")

	if err := rejectOutOfRange(ctx, c, cfg.MaxScore, sel.Matches[0], baseline); err != nil {
		return report, err
	}
	step("reject out of range score")

	if err := roundTripScore(ctx, c, cfg.MaxScore, sel.Matches[0], baseline); err != nil {
		return report, err
	}
	step("score round trip")

	if err := roundTripCoach(ctx, c, leader); err != nil {
		return report, err
	}
	step("team details round trip")

	if err := c.do(ctx, http.MethodDelete, "/api/selection", nil, nil, http.StatusNoContent); err != nil {
		return report, err
	}
	step("clear selection")

	return report, nil
}

func rejectOutOfRange(ctx context.Context, c *client, maxScore int, m Match, baseline []Team) error {
	if err := c.do(ctx, http.MethodPost, "/api/edits/match", map[string]int{"match_id": m.ID}, nil, http.StatusOK); err != nil {
		return err
	}
	bad := map[string]int{"home_score": maxScore + 1, "away_score": m.AwayScore}
	if err := c.do(ctx, http.MethodPatch, "/api/edits/match", bad, nil, http.StatusOK); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/api/edits/match/save", nil, nil, http.StatusUnprocessableEntity); err != nil {
		return err
	}

	// A rejected save keeps the staging so the user can correct it.
	var staged MatchEdit
	if err := c.do(ctx, http.MethodGet, "/api/edits/match", nil, &staged, http.StatusOK); err != nil {
		return err
	}
	if staged.HomeScore != maxScore+1 {
		return fmt.Errorf("%w: staged home score %d", ErrMismatch, staged.HomeScore)
	}
	if err := c.do(ctx, http.MethodDelete, "/api/edits/match", nil, nil, http.StatusNoContent); err != nil {
		return err
	}

	var after []Team
	if err := c.do(ctx, http.MethodGet, "/api/standings", nil, &after, http.StatusOK); err != nil {
		return err
	}
	return sameStandings(baseline, after)
}

func roundTripScore(ctx context.Context, c *client, maxScore int, m Match, baseline []Team) error {
	changed := m.HomeScore + 1
	if changed > maxScore {
		changed = m.HomeScore - 1
	}
	if err := saveScore(ctx, c, m.ID, changed, m.AwayScore); err != nil {
		return err
	}

	var edited []Team
	if err := c.do(ctx, http.MethodGet, "/api/standings", nil, &edited, http.StatusOK); err != nil {
		return err
	}
	if err := verifyStandings(edited); err != nil {
		return err
	}
	if sameStandings(baseline, edited) == nil {
		return fmt.Errorf("%w: standings did not change after saving match %d", ErrMismatch, m.ID)
	}

	if err := saveScore(ctx, c, m.ID, m.HomeScore, m.AwayScore); err != nil {
		return err
	}
	var restored []Team
	if err := c.do(ctx, http.MethodGet, "/api/standings", nil, &restored, http.StatusOK); err != nil {
		return err
	}
	return sameStandings(baseline, restored)
}

func saveScore(ctx context.Context, c *client, matchID, home, away int) error {
	if err := c.do(ctx, http.MethodPost, "/api/edits/match", map[string]int{"match_id": matchID}, nil, http.StatusOK); err != nil {
		return err
	}
	scores := map[string]int{"home_score": home, "away_score": away}
	if err := c.do(ctx, http.MethodPatch, "/api/edits/match", scores, nil, http.StatusOK); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/edits/match/save", nil, nil, http.StatusOK)
}

func roundTripCoach(ctx context.Context, c *client, team Team) error {
	const probe = "Smoke Test Coach"
	if err := saveCoach(ctx, c, probe); err != nil {
		return err
	}

	var got Team
	if err := c.do(ctx, http.MethodGet, "/api/teams/"+strconv.Itoa(team.ID), nil, &got, http.StatusOK); err != nil {
		return err
	}
	if got.Coach != probe {
		return fmt.Errorf("%w: coach %q after save", ErrMismatch, got.Coach)
	}
	return saveCoach(ctx, c, team.Coach)
}

func saveCoach(ctx context.Context, c *client, coach string) error {
	if err := c.do(ctx, http.MethodPost, "/api/edits/team", nil, nil, http.StatusOK); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPatch, "/api/edits/team", map[string]string{"coach": coach}, nil, http.StatusOK); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/api/edits/team/save", nil, nil, http.StatusOK)
}
