package api

import (
	"fmt"
	"net/http"

	"github.com/okian/matchday/internal/domain/model"
)

// SelectionHandler serves the selected and favorite team endpoints.
type SelectionHandler struct {
	reader   LeagueReader
	selector Selector
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(reader LeagueReader, selector Selector) *SelectionHandler {
	return &SelectionHandler{reader: reader, selector: selector}
}

type selectionResponse struct {
	Team    teamView               `json:"team"`
	Matches []model.FormattedMatch `json:"matches"`
}

type favoriteResponse struct {
	Team          teamView               `json:"team"`
	RecentMatches []model.FormattedMatch `json:"recentMatches"`
}

type toggleResponse struct {
	TeamID   int  `json:"teamId"`
	Favorite bool `json:"favorite"`
}

// HandleSelect handles POST /api/teams/{id}/select.
func (h *SelectionHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	team, matches, err := h.selector.SelectTeam(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Team: viewOf(team), Matches: matches})
}

// HandleGetSelection handles GET /api/selection.
func (h *SelectionHandler) HandleGetSelection(w http.ResponseWriter, _ *http.Request) {
	team, ok := h.reader.SelectedTeam()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: no team selected", ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse{Team: viewOf(team), Matches: h.reader.SelectedTeamMatches()})
}

// HandleClearSelection handles DELETE /api/selection.
func (h *SelectionHandler) HandleClearSelection(w http.ResponseWriter, _ *http.Request) {
	h.selector.ClearSelection()
	w.WriteHeader(http.StatusNoContent)
}

// HandleToggleFavorite handles POST /api/teams/{id}/favorite.
func (h *SelectionHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	fav, err := h.selector.ToggleFavoriteTeam(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{TeamID: id, Favorite: fav})
}

// HandleGetFavorite handles GET /api/favorite.
func (h *SelectionHandler) HandleGetFavorite(w http.ResponseWriter, _ *http.Request) {
	team, ok := h.reader.FavoriteTeam()
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", fmt.Errorf("%w: no favorite team", ErrNotFound))
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{Team: viewOf(team), RecentMatches: h.reader.FavoriteRecentMatches()})
}
