package api

import (
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/Matrix/internal/relay"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
	"github.com/MikeSquared-Agency/Matrix/internal/store"
)

type AdminHandler struct {
	engine  *scoring.Engine
	journal store.Journal
	relay   *relay.Relay
}

func NewAdminHandler(e *scoring.Engine, j store.Journal, rl *relay.Relay) *AdminHandler {
	return &AdminHandler{engine: e, journal: j, relay: rl}
}

type StatsResponse struct {
	Criteria    int            `json:"criteria"`
	TotalWeight int            `json:"total_weight"`
	Best        scoring.Option `json:"best"`
	Relay       *relay.Stats   `json:"relay,omitempty"`
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	a := h.engine.Analyze()
	resp := StatsResponse{
		Criteria:    a.Criteria,
		TotalWeight: a.TotalWeight,
		Best:        a.Best,
	}
	if h.relay != nil {
		s := h.relay.Stats()
		resp.Relay = &s
	}
	writeJSON(w, http.StatusOK, resp)
}

// Journal handles GET /api/v1/journal?kind=&limit=
func (h *AdminHandler) Journal(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		writeJSON(w, http.StatusOK, []*store.Entry{})
		return
	}

	var f store.Filter
	if k := r.URL.Query().Get("kind"); k != "" {
		kind := store.EntryKind(k)
		f.Kind = &kind
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			f.Limit = n
		}
	}

	entries, err := h.journal.List(r.Context(), f)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []*store.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
