package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/matchday/internal/domain/matchview"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

// FavoriteKey is the key/value slot holding the favorite team id.
const FavoriteKey = "favoriteTeamId"

// ToggleFavoriteTeam clears the favorite when it already is id and sets it
// otherwise. The slot is written before memory so a failed write changes
// nothing. It reports whether id is the favorite afterwards.
func (s *Service) ToggleFavoriteTeam(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.teamIndexLocked(id) < 0 {
		return false, fmt.Errorf("%w: %d", ErrTeamNotFound, id)
	}

	if s.favoriteID != nil && *s.favoriteID == id {
		if err := s.kvDo("delete", func() error { return s.kv.Delete(ctx, FavoriteKey) }); err != nil {
			return true, fmt.Errorf("%w: %w", ErrPersist, err)
		}
		s.favoriteID = nil
		metrics.RecordFavoriteToggle("cleared")
		s.logger.Info(ctx, "favorite team cleared", logger.Int("teamId", id))
		return false, nil
	}

	if err := s.kvDo("set", func() error { return s.kv.Set(ctx, FavoriteKey, strconv.Itoa(id)) }); err != nil {
		return s.favoriteID != nil && *s.favoriteID == id, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	s.favoriteID = &id
	metrics.RecordFavoriteToggle("set")
	s.logger.Info(ctx, "favorite team set", logger.Int("teamId", id))
	return true, nil
}

// FavoriteTeam resolves the favorite id against the ranked table.
func (s *Service) FavoriteTeam() (model.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.favoriteID == nil {
		return model.Team{}, false
	}
	if i := s.teamIndexLocked(*s.favoriteID); i >= 0 {
		return s.teams[i].Clone(), true
	}
	return model.Team{}, false
}

// FavoriteRecentMatches returns the favorite team's most recent matches.
func (s *Service) FavoriteRecentMatches() []model.FormattedMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.favoriteID == nil {
		return []model.FormattedMatch{}
	}
	return matchview.ForTeam(s.teams, s.matches, *s.favoriteID, s.recentLimit)
}

func (s *Service) restoreFavorite(ctx context.Context) error {
	var (
		raw   string
		found bool
	)
	err := s.kvDo("get", func() error {
		var err error
		raw, found, err = s.kv.Get(ctx, FavoriteKey)
		return err
	})
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		s.logger.Warn(ctx, "discarding malformed favorite team id", logger.String("value", raw))
		return s.kv.Delete(ctx, FavoriteKey)
	}

	s.mu.Lock()
	s.favoriteID = &id
	s.mu.Unlock()
	s.logger.Debug(ctx, "favorite team restored", logger.Int("teamId", id))
	return nil
}

func (s *Service) kvDo(op string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordKVOperation(op, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordErrorByComponent("favorites", op)
	}
	return err
}
