package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

type CriteriaHandler struct {
	engine *scoring.Engine
}

func NewCriteriaHandler(e *scoring.Engine) *CriteriaHandler {
	return &CriteriaHandler{engine: e}
}

// MutationResponse is returned by every mutating endpoint. Applied is false when
// the edit was ignored (unknown id or option, blank name); that is not an error.
type MutationResponse struct {
	ID       int              `json:"id,omitempty"`
	Applied  bool             `json:"applied"`
	Analysis scoring.Analysis `json:"analysis"`
}

// AddCriterionRequest creates a criterion. Weight and scores are optional and
// fall back to the defaults.
type AddCriterionRequest struct {
	Name   string                 `json:"name"`
	Weight *int                   `json:"weight,omitempty"`
	Scores map[scoring.Option]int `json:"scores,omitempty"`
}

type UpdateCriterionRequest struct {
	Name   *string                `json:"name,omitempty"`
	Weight *int                   `json:"weight,omitempty"`
	Scores map[scoring.Option]int `json:"scores,omitempty"`
}

type UpdateScoreRequest struct {
	Score *int `json:"score"`
}

func (h *CriteriaHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"options":         scoring.Options,
		"max_score":       scoring.MaxScore,
		"max_weight_hint": scoring.MaxWeightHint,
	})
}

func (h *CriteriaHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Criteria())
}

func (h *CriteriaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := criterionID(w, r)
	if !ok {
		return
	}
	c, found := h.engine.Criterion(id)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "criterion not found"})
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Add handles POST /api/v1/criteria
func (h *CriteriaHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddCriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	h.respond(w, h.engine.Apply(scoring.Edit{
		Kind:   scoring.ChangeAdd,
		Name:   &req.Name,
		Weight: req.Weight,
		Scores: req.Scores,
	}))
}

// Update handles PATCH /api/v1/criteria/{id}. Every supplied field is applied as one edit.
func (h *CriteriaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := criterionID(w, r)
	if !ok {
		return
	}
	var req UpdateCriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Name == nil && req.Weight == nil && len(req.Scores) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name, weight or scores required"})
		return
	}
	h.respond(w, h.engine.Apply(scoring.Edit{
		Kind:        scoring.ChangeUpdate,
		CriterionID: id,
		Name:        req.Name,
		Weight:      req.Weight,
		Scores:      req.Scores,
	}))
}

// UpdateScore handles PUT /api/v1/criteria/{id}/scores/{option}
func (h *CriteriaHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	id, ok := criterionID(w, r)
	if !ok {
		return
	}
	var req UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Score == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "score required"})
		return
	}
	h.respond(w, h.engine.Apply(scoring.Edit{
		Kind:        scoring.ChangeScore,
		CriterionID: id,
		Option:      scoring.Option(chi.URLParam(r, "option")),
		Score:       req.Score,
	}))
}

func (h *CriteriaHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := criterionID(w, r)
	if !ok {
		return
	}
	h.respond(w, h.engine.Apply(scoring.Edit{Kind: scoring.ChangeRemove, CriterionID: id}))
}

func (h *CriteriaHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.engine.Apply(scoring.Edit{Kind: scoring.ChangeReset}))
}

// respond writes the analysis produced by the edit itself, not a later read.
func (h *CriteriaHandler) respond(w http.ResponseWriter, res scoring.Result) {
	id := 0
	if res.Applied {
		id = res.ID
	}
	writeJSON(w, http.StatusOK, MutationResponse{
		ID:       id,
		Applied:  res.Applied,
		Analysis: res.Analysis,
	})
}

func criterionID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid criterion id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
