package api

import (
	"fmt"
	"net/http"

	service "github.com/okian/matchday/internal/app"
)

// EditsHandler exposes the match score and team detail edit sessions.
type EditsHandler struct {
	deps Editor
}

// NewEditsHandler creates a new edits handler.
func NewEditsHandler(deps Editor) *EditsHandler {
	return &EditsHandler{deps: deps}
}

type startMatchRequest struct {
	MatchID int `json:"match_id"`
}

type setScoresRequest struct {
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

type setTeamRequest struct {
	Coach   *string `json:"coach"`
	Stadium *string `json:"stadium"`
}

// HandleStartMatch handles POST /api/edits/match.
func (h *EditsHandler) HandleStartMatch(w http.ResponseWriter, r *http.Request) {
	var req startMatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.MatchID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: match_id is required", ErrBadRequest))
		return
	}
	edit, err := h.deps.StartEditingMatchByID(req.MatchID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

// HandleGetMatch handles GET /api/edits/match.
func (h *EditsHandler) HandleGetMatch(w http.ResponseWriter, _ *http.Request) {
	edit, ok := h.deps.MatchEdit()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: no match edit", ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

// HandleSetMatch handles PATCH /api/edits/match. Both scores are required;
// range checks happen on save.
func (h *EditsHandler) HandleSetMatch(w http.ResponseWriter, r *http.Request) {
	var req setScoresRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if req.HomeScore == nil || req.AwayScore == nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: home_score and away_score are required", ErrBadRequest))
		return
	}
	edit, err := h.deps.SetMatchScores(*req.HomeScore, *req.AwayScore)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

// HandleSaveMatch handles POST /api/edits/match/save.
func (h *EditsHandler) HandleSaveMatch(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.SaveMatchResult(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "saved"})
}

// HandleCancelMatch handles DELETE /api/edits/match.
func (h *EditsHandler) HandleCancelMatch(w http.ResponseWriter, _ *http.Request) {
	h.deps.CancelEditMatch()
	w.WriteHeader(http.StatusNoContent)
}

// HandleStartTeam handles POST /api/edits/team.
func (h *EditsHandler) HandleStartTeam(w http.ResponseWriter, _ *http.Request) {
	edit, err := h.deps.StartEditingTeamDetails()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

// HandleGetTeam handles GET /api/edits/team.
func (h *EditsHandler) HandleGetTeam(w http.ResponseWriter, _ *http.Request) {
	edit, ok := h.deps.TeamEdit()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: no team edit", ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

// HandleSetTeam handles PATCH /api/edits/team. Omitted fields keep their
// staged value.
func (h *EditsHandler) HandleSetTeam(w http.ResponseWriter, r *http.Request) {
	var req setTeamRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	current, ok := h.deps.TeamEdit()
	if !ok {
		writeServiceError(w, service.ErrNotEditing)
		return
	}
	if req.Coach != nil {
		current.Coach = *req.Coach
	}
	if req.Stadium != nil {
		current.Stadium = *req.Stadium
	}
	edit, err := h.deps.SetTeamDetails(current.Coach, current.Stadium)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edit)
}

// HandleSaveTeam handles POST /api/edits/team/save.
func (h *EditsHandler) HandleSaveTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.SaveTeamDetails(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "saved"})
}

// HandleCancelTeam handles DELETE /api/edits/team.
func (h *EditsHandler) HandleCancelTeam(w http.ResponseWriter, _ *http.Request) {
	h.deps.CancelEditTeamDetails()
	w.WriteHeader(http.StatusNoContent)
}
