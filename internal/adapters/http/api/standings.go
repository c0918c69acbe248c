package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// StandingsHandler serves the ranked table and per-team match views.
type StandingsHandler struct {
	deps LeagueReader
}

// NewStandingsHandler creates a new standings handler.
func NewStandingsHandler(deps LeagueReader) *StandingsHandler {
	return &StandingsHandler{deps: deps}
}

// HandleStandings handles GET /api/standings.
func (h *StandingsHandler) HandleStandings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, viewsOf(h.deps.Standings()))
}

// HandleTeam handles GET /api/teams/{id}.
func (h *StandingsHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	team, ok := h.deps.Team(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: team %d", ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, viewOf(team))
}

// HandleTeamMatches handles GET /api/teams/{id}/matches?limit=N. A team
// without matches yields an empty list.
func (h *StandingsHandler) HandleTeamMatches(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: invalid limit %q", ErrBadRequest, raw))
			return
		}
	}
	writeJSON(w, http.StatusOK, h.deps.TeamMatches(id, limit))
}
