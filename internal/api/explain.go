package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

type ExplainHandler struct {
	engine *scoring.Engine
}

func NewExplainHandler(e *scoring.Engine) *ExplainHandler {
	return &ExplainHandler{engine: e}
}

// Analysis returns the full analysis of the current criteria.
// GET /api/v1/analysis
func (h *ExplainHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.engine.Analyze())
}

// Explain returns the ranked contribution breakdown for one option.
// GET /api/v1/analysis/explain/{option}
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	opt := scoring.Option(chi.URLParam(r, "option"))
	if !opt.Valid() {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown option"})
		return
	}

	a := h.engine.Analyze()
	result, _ := a.Option(opt)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"option":        opt,
		"score":         result.Score,
		"max_possible":  result.MaxPossible,
		"percent":       result.Percent,
		"best":          result.Best,
		"worst":         result.Worst,
		"dominated":     containsOption(a.Dominated, opt),
		"contributions": h.engine.Contributions(opt),
	})
}

func containsOption(opts []scoring.Option, o scoring.Option) bool {
	for _, x := range opts {
		if x == o {
			return true
		}
	}
	return false
}
