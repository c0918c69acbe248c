package service

import (
	"context"
	"fmt"

	"github.com/okian/matchday/internal/domain/matchview"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

const (
	kindMatch = "match"
	kindTeam  = "team"
)

// MatchEdit stages a score change for one match.
type MatchEdit struct {
	Match     model.FormattedMatch `json:"match"`
	HomeScore int                  `json:"homeScore"`
	AwayScore int                  `json:"awayScore"`
}

// TeamEdit stages descriptive changes for the selected team.
type TeamEdit struct {
	TeamID  int    `json:"teamId"`
	Coach   string `json:"coach"`
	Stadium string `json:"stadium"`
}

// StartEditingMatch stages fm and its current scores, replacing any earlier
// match edit.
func (s *Service) StartEditingMatch(fm model.FormattedMatch) MatchEdit {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matchEdit = &MatchEdit{Match: fm, HomeScore: fm.HomeScore, AwayScore: fm.AwayScore}
	metrics.RecordEdit(kindMatch, "started")
	return *s.matchEdit
}

// StartEditingMatchByID stages match id. The cached view of the selected team
// is preferred so the edit keeps that team's perspective; otherwise the match
// is viewed from the home side.
func (s *Service) StartEditingMatchByID(id int) (MatchEdit, error) {
	s.mu.RLock()
	fm, ok := s.formattedLocked(id)
	s.mu.RUnlock()
	if !ok {
		return MatchEdit{}, fmt.Errorf("%w: %d", ErrMatchNotFound, id)
	}
	return s.StartEditingMatch(fm), nil
}

func (s *Service) formattedLocked(id int) (model.FormattedMatch, bool) {
	for _, fm := range s.selectedMatches {
		if fm.ID == id {
			return fm, true
		}
	}
	names := make(map[int]string, len(s.teams))
	for _, t := range s.teams {
		names[t.ID] = t.Name
	}
	for _, m := range s.matches {
		if m.ID == id {
			return matchview.Format(names, m, true), true
		}
	}
	return model.FormattedMatch{}, false
}

// SetMatchScores updates the staged scores. Range checks happen on save.
func (s *Service) SetMatchScores(home, away int) (MatchEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.matchEdit == nil {
		return MatchEdit{}, ErrNotEditing
	}
	s.matchEdit.HomeScore = home
	s.matchEdit.AwayScore = away
	return *s.matchEdit, nil
}

// MatchEdit returns the staged match edit, if any.
func (s *Service) MatchEdit() (MatchEdit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.matchEdit == nil {
		return MatchEdit{}, false
	}
	return *s.matchEdit, true
}

// SaveMatchResult commits the staged scores: the raw match and the cached
// view are patched and the standings recomputed. An out of range score
// aborts with ErrScoreOutOfRange and leaves everything, including the
// staging, untouched.
func (s *Service) SaveMatchResult(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edit := s.matchEdit
	if edit == nil {
		return ErrNotEditing
	}
	if !s.validScore(edit.HomeScore) || !s.validScore(edit.AwayScore) {
		metrics.RecordScoreValidationFailure()
		metrics.RecordEdit(kindMatch, "rejected")
		s.logger.Warn(ctx, "match score rejected",
			logger.Int("matchId", edit.Match.ID),
			logger.Int("homeScore", edit.HomeScore),
			logger.Int("awayScore", edit.AwayScore),
		)
		return fmt.Errorf("%w: scores must be between 0 and %d", ErrScoreOutOfRange, s.maxScore)
	}

	idx := -1
	for i := range s.matches {
		if s.matches[i].ID == edit.Match.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		metrics.RecordEdit(kindMatch, "rejected")
		return fmt.Errorf("%w: %d", ErrMatchNotFound, edit.Match.ID)
	}

	s.matches[idx].HomeScore = edit.HomeScore
	s.matches[idx].AwayScore = edit.AwayScore
	for i := range s.selectedMatches {
		if s.selectedMatches[i].ID == edit.Match.ID {
			s.selectedMatches[i] = matchview.Rescore(s.selectedMatches[i], edit.HomeScore, edit.AwayScore)
		}
	}
	s.recomputeLocked(s.teams, triggerEdit)

	s.matchEdit = nil
	s.raiseNotice()
	metrics.RecordEdit(kindMatch, "saved")
	s.logger.Info(ctx, "match result saved",
		logger.Int("matchId", edit.Match.ID),
		logger.Int("homeScore", edit.HomeScore),
		logger.Int("awayScore", edit.AwayScore),
	)
	return nil
}

// CancelEditMatch discards the staged match edit.
func (s *Service) CancelEditMatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.matchEdit != nil {
		metrics.RecordEdit(kindMatch, "cancelled")
	}
	s.matchEdit = nil
}

func (s *Service) validScore(n int) bool {
	return n >= 0 && n <= s.maxScore
}

// StartEditingTeamDetails stages the selected team's coach and stadium.
func (s *Service) StartEditingTeamDetails() (TeamEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team, ok := s.selectedTeamLocked()
	if !ok {
		return TeamEdit{}, ErrNoTeamSelected
	}
	s.teamEdit = &TeamEdit{TeamID: team.ID, Coach: team.Coach, Stadium: team.Stadium}
	metrics.RecordEdit(kindTeam, "started")
	return *s.teamEdit, nil
}

// SetTeamDetails updates the staged coach and stadium.
func (s *Service) SetTeamDetails(coach, stadium string) (TeamEdit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.teamEdit == nil {
		return TeamEdit{}, ErrNotEditing
	}
	s.teamEdit.Coach = coach
	s.teamEdit.Stadium = stadium
	return *s.teamEdit, nil
}

// TeamEdit returns the staged team edit, if any.
func (s *Service) TeamEdit() (TeamEdit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.teamEdit == nil {
		return TeamEdit{}, false
	}
	return *s.teamEdit, true
}

// SaveTeamDetails writes the staged coach and stadium onto the table entry of
// the team the edit was started for, which must still be selected. Ranking is
// unaffected so nothing is recomputed.
func (s *Service) SaveTeamDetails(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.selectedID == nil {
		return ErrNoTeamSelected
	}
	if s.teamEdit == nil || s.teamEdit.TeamID != *s.selectedID {
		return ErrNotEditing
	}
	i := s.teamIndexLocked(s.teamEdit.TeamID)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrTeamNotFound, s.teamEdit.TeamID)
	}

	s.teams[i].Coach = s.teamEdit.Coach
	s.teams[i].Stadium = s.teamEdit.Stadium
	s.teamEdit = nil
	s.raiseNotice()
	metrics.RecordEdit(kindTeam, "saved")
	s.logger.Info(ctx, "team details saved",
		logger.Int("teamId", s.teams[i].ID),
		logger.String("coach", s.teams[i].Coach),
		logger.String("stadium", s.teams[i].Stadium),
	)
	return nil
}

// CancelEditTeamDetails discards the staged team edit.
func (s *Service) CancelEditTeamDetails() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.teamEdit != nil {
		metrics.RecordEdit(kindTeam, "cancelled")
	}
	s.teamEdit = nil
}

func (s *Service) raiseNotice() {
	s.notice.Raise()
	metrics.RecordNoticeRaised()
}
