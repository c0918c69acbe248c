package api

import (
	"net/http"

	service "github.com/okian/matchday/internal/app"
)

// StateHandler exposes flags and reloads.
type StateHandler struct {
	reader LeagueReader
	loader Loader
}

// NewStateHandler creates a new state handler.
func NewStateHandler(reader LeagueReader, loader Loader) *StateHandler {
	return &StateHandler{reader: reader, loader: loader}
}

type reloadResponse struct {
	Status string        `json:"status"`
	Teams  int           `json:"teams"`
	State  service.State `json:"state"`
}

// HandleState handles GET /api/state.
func (h *StateHandler) HandleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.reader.State())
}

// HandleReload handles POST /api/reload. A failed load still answers 200
// with the error in state.lastLoadError, mirroring how the loader degrades
// to an empty league.
func (h *StateHandler) HandleReload(w http.ResponseWriter, r *http.Request) {
	h.loader.Load(r.Context())
	st := h.reader.State()
	status := "reloaded"
	if st.LastLoadError != "" {
		status = "failed"
	}
	writeJSON(w, http.StatusOK, reloadResponse{Status: status, Teams: len(h.reader.Standings()), State: st})
}
