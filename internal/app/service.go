// Package service provides the league state manager: it loads raw teams and
// matches, keeps the ranked table current and runs the edit flows exposed by
// the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/adapters/source"
	"github.com/okian/matchday/internal/domain/matchview"
	"github.com/okian/matchday/internal/domain/model"
	"github.com/okian/matchday/internal/domain/notice"
	"github.com/okian/matchday/internal/domain/standings"
	"github.com/okian/matchday/pkg/logger"
	"github.com/okian/matchday/pkg/metrics"
)

const (
	defaultMaxScore    = 7
	defaultRecentLimit = 5

	triggerLoad = "load"
	triggerEdit = "edit"
)

// Service owns the league state. Construct it with New, call Start once and
// Stop on teardown.
type Service struct {
	mu sync.RWMutex

	// Collaborators
	source source.Source
	kv     repository.KV
	clock  clockwork.Clock
	notice *notice.Flag
	logger logger.Logger

	// Configuration
	noticeDuration time.Duration
	loadDelay      time.Duration
	maxScore       int
	recentLimit    int

	// League data
	teams   []model.Team  // ranked
	matches []model.Match // raw, in source order

	// Selection
	selectedID      *int
	favoriteID      *int
	selectedMatches []model.FormattedMatch
	loadingMatches  bool

	// Edit sessions
	matchEdit *MatchEdit
	teamEdit  *TeamEdit

	// Load bookkeeping
	inFlight      int
	loads         int
	lastLoadError string
	lastLoadedAt  time.Time

	started bool
	stopped bool
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		clock:          clockwork.NewRealClock(),
		logger:         logger.Nop(),
		noticeDuration: notice.DefaultDuration,
		maxScore:       defaultMaxScore,
		recentLimit:    defaultRecentLimit,
		teams:          []model.Team{},
		matches:        []model.Match{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.source == nil {
		s.source = source.NewEmbedded()
	}
	if s.kv == nil {
		s.kv = repository.NewMemoryStore()
	}
	s.notice = s.newNotice()
	return s
}

func (s *Service) newNotice() *notice.Flag {
	log := s.logger
	return notice.New(
		notice.WithClock(s.clock),
		notice.WithDuration(s.noticeDuration),
		notice.WithOnClear(func() {
			log.Debug(context.Background(), "success notice cleared")
		}),
	)
}

// Start restores the favorite team and performs the initial load.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	if s.stopped {
		// Stop closed the previous flag for good.
		s.notice = s.newNotice()
		s.stopped = false
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "starting league service", logger.Any("source", s.source))

	if err := s.restoreFavorite(ctx); err != nil {
		s.logger.Warn(ctx, "favorite team not restored", logger.Error(err))
	}
	s.Load(ctx)

	s.logger.Info(ctx, "league service started",
		logger.Int("teams", len(s.Standings())),
		logger.Int("matches", len(s.Matches())),
	)
	return nil
}

// Stop cancels pending notice timers. State is left readable.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.stopped = true
	flag := s.notice
	s.mu.Unlock()

	flag.Close()
	s.logger.Info(context.Background(), "league service stopped")
}

// Load fetches the bundle and replaces all league state. Failures are logged
// and leave the league empty; they are never returned.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	start := time.Now()
	bundle, err := s.fetch(ctx)
	durationMs := float64(time.Since(start).Microseconds()) / 1000

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	s.lastLoadedAt = s.clock.Now()
	if err != nil {
		s.teams = []model.Team{}
		s.matches = []model.Match{}
		s.selectedMatches = []model.FormattedMatch{}
		s.lastLoadError = err.Error()

		metrics.RecordDataLoad("failure", durationMs)
		metrics.RecordErrorByComponent("loader", "fetch")
		metrics.UpdateLeagueSize(0, 0)
		s.logger.Error(ctx, "league data load failed", logger.Error(err), logger.Any("source", s.source))
		return
	}

	s.lastLoadError = ""
	s.matches = model.CloneMatches(bundle.Matches)
	s.recomputeLocked(bundle.Teams, triggerLoad)
	s.refreshSelectionLocked()

	metrics.RecordDataLoad("success", durationMs)
	metrics.UpdateLeagueSize(len(s.teams), len(s.matches))
	s.logger.Info(ctx, "league data loaded",
		logger.Int("teams", len(s.teams)),
		logger.Int("matches", len(s.matches)),
		logger.Float64("durationMs", durationMs),
	)
}

func (s *Service) fetch(ctx context.Context) (model.Bundle, error) {
	if s.loadDelay > 0 {
		select {
		case <-s.clock.After(s.loadDelay):
		case <-ctx.Done():
			return model.Bundle{}, fmt.Errorf("load delay: %w", ctx.Err())
		}
	}
	return s.source.Fetch(ctx)
}

// recomputeLocked rebuilds the ranked table from teams and the raw matches.
func (s *Service) recomputeLocked(teams []model.Team, trigger string) {
	start := time.Now()
	s.teams = standings.Compute(teams, s.matches)
	metrics.RecordStandingsRecompute(trigger, float64(time.Since(start).Microseconds())/1000)
}

// refreshSelectionLocked rebuilds the cached view of the selected team.
func (s *Service) refreshSelectionLocked() {
	if s.selectedID == nil {
		s.selectedMatches = []model.FormattedMatch{}
		return
	}
	s.selectedMatches = matchview.ForTeam(s.teams, s.matches, *s.selectedID, 0)
}

func (s *Service) teamIndexLocked(id int) int {
	for i := range s.teams {
		if s.teams[i].ID == id {
			return i
		}
	}
	return -1
}

// Standings returns a copy of the ranked table.
func (s *Service) Standings() []model.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneTeams(s.teams)
}

// Matches returns a copy of the raw match list.
func (s *Service) Matches() []model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneMatches(s.matches)
}

// Team returns the ranked entry for id.
func (s *Service) Team(id int) (model.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.teamIndexLocked(id); i >= 0 {
		return s.teams[i].Clone(), true
	}
	return model.Team{}, false
}

// TeamMatches returns teamID's formatted matches newest first. limit <= 0
// returns all of them.
func (s *Service) TeamMatches(teamID, limit int) []model.FormattedMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matchview.ForTeam(s.teams, s.matches, teamID, limit)
}

// SelectTeam makes id the selected team and caches its match view. A team
// edit staged for a different team is discarded.
func (s *Service) SelectTeam(ctx context.Context, id int) (model.Team, []model.FormattedMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.teamIndexLocked(id)
	if i < 0 {
		return model.Team{}, nil, fmt.Errorf("%w: %d", ErrTeamNotFound, id)
	}
	if s.teamEdit != nil && s.teamEdit.TeamID != id {
		s.teamEdit = nil
		metrics.RecordEdit(kindTeam, "cancelled")
	}

	// The view is built under the write lock so a concurrent save cannot
	// patch a cache that is about to be replaced.
	s.loadingMatches = true
	s.selectedID = &id
	s.selectedMatches = matchview.ForTeam(s.teams, s.matches, id, 0)
	s.loadingMatches = false

	s.logger.Debug(ctx, "team selected", logger.Int("teamId", id), logger.Int("matches", len(s.selectedMatches)))
	return s.teams[i].Clone(), cloneFormatted(s.selectedMatches), nil
}

// ClearSelection drops the selected team and its cached view.
func (s *Service) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = nil
	s.selectedMatches = []model.FormattedMatch{}
	s.teamEdit = nil
}

// SelectedTeam resolves the selected id against the ranked table.
func (s *Service) SelectedTeam() (model.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedTeamLocked()
}

func (s *Service) selectedTeamLocked() (model.Team, bool) {
	if s.selectedID == nil {
		return model.Team{}, false
	}
	if i := s.teamIndexLocked(*s.selectedID); i >= 0 {
		return s.teams[i].Clone(), true
	}
	return model.Team{}, false
}

// SelectedTeamMatches returns the cached view of the selected team.
func (s *Service) SelectedTeamMatches() []model.FormattedMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneFormatted(s.selectedMatches)
}

// IsLoading reports whether a load is in flight.
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// ShowEditSuccess reports whether the save notice is raised.
func (s *Service) ShowEditSuccess() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notice.IsSet()
}

// State is a point-in-time snapshot of the non-tabular state.
type State struct {
	Loading         bool       `json:"loading"`
	LoadingMatches  bool       `json:"loadingMatches"`
	ShowEditSuccess bool       `json:"showEditSuccess"`
	SelectedTeamID  *int       `json:"selectedTeamId"`
	FavoriteTeamID  *int       `json:"favoriteTeamId"`
	MatchEdit       *MatchEdit `json:"matchEdit"`
	TeamEdit        *TeamEdit  `json:"teamEdit"`
	LastLoadError   string     `json:"lastLoadError,omitempty"`
}

// State returns a snapshot of flags, selections and edit sessions.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{
		Loading:         s.inFlight > 0,
		LoadingMatches:  s.loadingMatches,
		ShowEditSuccess: s.notice.IsSet(),
		SelectedTeamID:  copyID(s.selectedID),
		FavoriteTeamID:  copyID(s.favoriteID),
		LastLoadError:   s.lastLoadError,
	}
	if s.matchEdit != nil {
		me := *s.matchEdit
		st.MatchEdit = &me
	}
	if s.teamEdit != nil {
		te := *s.teamEdit
		st.TeamEdit = &te
	}
	return st
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":        s.started,
		"source":         fmt.Sprint(s.source),
		"teams":          len(s.teams),
		"matches":        len(s.matches),
		"loads":          s.loads,
		"loading":        s.inFlight > 0,
		"lastLoadError":  s.lastLoadError,
		"pendingNotices": s.notice.Pending(),
		"maxScore":       s.maxScore,
	}
	if !s.lastLoadedAt.IsZero() {
		stats["lastLoadedAt"] = s.lastLoadedAt.UTC().Format(time.RFC3339)
	}

	metrics.UpdateLeagueSize(len(s.teams), len(s.matches))
	return stats
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func cloneFormatted(in []model.FormattedMatch) []model.FormattedMatch {
	out := make([]model.FormattedMatch, len(in))
	copy(out, in)
	return out
}
