// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	service "github.com/okian/matchday/internal/app"
	"github.com/okian/matchday/internal/domain/model"
)

// LeagueReader exposes the read side of the league state.
type LeagueReader interface {
	Standings() []model.Team
	Team(id int) (model.Team, bool)
	TeamMatches(teamID, limit int) []model.FormattedMatch
	SelectedTeam() (model.Team, bool)
	SelectedTeamMatches() []model.FormattedMatch
	FavoriteTeam() (model.Team, bool)
	FavoriteRecentMatches() []model.FormattedMatch
	State() service.State
}

// Selector changes which team is selected or favorite.
type Selector interface {
	SelectTeam(ctx context.Context, id int) (model.Team, []model.FormattedMatch, error)
	ClearSelection()
	ToggleFavoriteTeam(ctx context.Context, id int) (bool, error)
}

// Editor runs the match score and team detail edit flows.
type Editor interface {
	StartEditingMatchByID(id int) (service.MatchEdit, error)
	SetMatchScores(home, away int) (service.MatchEdit, error)
	MatchEdit() (service.MatchEdit, bool)
	SaveMatchResult(ctx context.Context) error
	CancelEditMatch()

	StartEditingTeamDetails() (service.TeamEdit, error)
	SetTeamDetails(coach, stadium string) (service.TeamEdit, error)
	TeamEdit() (service.TeamEdit, bool)
	SaveTeamDetails(ctx context.Context) error
	CancelEditTeamDetails()
}

// Loader re-runs the data load.
type Loader interface {
	Load(ctx context.Context)
}

// Dependencies bundles everything the handlers need. *service.Service
// satisfies it.
type Dependencies interface {
	LeagueReader
	Selector
	Editor
	Loader
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	standingsHandler *StandingsHandler
	selectionHandler *SelectionHandler
	editsHandler     *EditsHandler
	stateHandler     *StateHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		standingsHandler: NewStandingsHandler(deps),
		selectionHandler: NewSelectionHandler(deps, deps),
		editsHandler:     NewEditsHandler(deps),
		stateHandler:     NewStateHandler(deps, deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}

	route("GET /healthz", "healthz", s.healthHandler.HandleHealth)
	route("GET /metrics", "metrics", s.healthHandler.HandleHealth)
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /api/standings", "standings", s.standingsHandler.HandleStandings)
	route("GET /api/teams/{id}", "team", s.standingsHandler.HandleTeam)
	route("GET /api/teams/{id}/matches", "team_matches", s.standingsHandler.HandleTeamMatches)

	route("POST /api/teams/{id}/select", "select", s.selectionHandler.HandleSelect)
	route("GET /api/selection", "selection", s.selectionHandler.HandleGetSelection)
	route("DELETE /api/selection", "selection", s.selectionHandler.HandleClearSelection)
	route("POST /api/teams/{id}/favorite", "favorite_toggle", s.selectionHandler.HandleToggleFavorite)
	route("GET /api/favorite", "favorite", s.selectionHandler.HandleGetFavorite)

	route("POST /api/edits/match", "edit_match", s.editsHandler.HandleStartMatch)
	route("GET /api/edits/match", "edit_match", s.editsHandler.HandleGetMatch)
	route("PATCH /api/edits/match", "edit_match", s.editsHandler.HandleSetMatch)
	route("POST /api/edits/match/save", "edit_match_save", s.editsHandler.HandleSaveMatch)
	route("DELETE /api/edits/match", "edit_match", s.editsHandler.HandleCancelMatch)

	route("POST /api/edits/team", "edit_team", s.editsHandler.HandleStartTeam)
	route("GET /api/edits/team", "edit_team", s.editsHandler.HandleGetTeam)
	route("PATCH /api/edits/team", "edit_team", s.editsHandler.HandleSetTeam)
	route("POST /api/edits/team/save", "edit_team_save", s.editsHandler.HandleSaveTeam)
	route("DELETE /api/edits/team", "edit_team", s.editsHandler.HandleCancelTeam)

	route("GET /api/state", "state", s.stateHandler.HandleState)
	route("POST /api/reload", "reload", s.stateHandler.HandleReload)
}

const maxBodyBytes = 1 << 16

// teamView adds the derived counters to a table entry.
type teamView struct {
	model.Team
	GamesPlayed    int `json:"gamesPlayed"`
	GoalDifference int `json:"goalDifference"`
}

func viewOf(t model.Team) teamView {
	return teamView{Team: t, GamesPlayed: t.GamesPlayed(), GoalDifference: t.GoalDifference()}
}

func viewsOf(teams []model.Team) []teamView {
	out := make([]teamView, len(teams))
	for i, t := range teams {
		out[i] = viewOf(t)
	}
	return out
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service sentinels onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrScoreOutOfRange):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err)
	case errors.Is(err, service.ErrNotEditing):
		writeError(w, http.StatusConflict, "not_editing", err)
	case errors.Is(err, service.ErrNoTeamSelected):
		writeError(w, http.StatusConflict, "no_team_selected", err)
	case errors.Is(err, service.ErrMatchNotFound), errors.Is(err, service.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrPersist):
		writeError(w, http.StatusServiceUnavailable, "persist_failed", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// pathID parses the {id} wildcard as a positive integer.
func pathID(r *http.Request) (int, error) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrBadRequest, raw)
	}
	return id, nil
}

// decodeBody reads a JSON body into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
