package capital

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

// Handler handles capital-budgeting HTTP requests
type Handler struct {
	runs      *runs.Repository
	narrative *narrative.Service
	log       zerolog.Logger
}

// NewHandler creates a new capital-budgeting handler
func NewHandler(runsRepo *runs.Repository, narrativeSvc *narrative.Service, log zerolog.Logger) *Handler {
	return &Handler{
		runs:      runsRepo,
		narrative: narrativeSvc,
		log:       log.With().Str("handler", "capital").Logger(),
	}
}

type calculateResponse struct {
	Result
	Narrative *string `json:"narrative,omitempty"`
}

type compareResponse struct {
	CompareResult
	Narrative *string  `json:"narrative,omitempty"`
	Flags     []string `json:"flags,omitempty"`
}

// HandleCalculate handles POST /calculate
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.CashFlows) == 0 {
		http.Error(w, "cash_flows must not be empty", http.StatusBadRequest)
		return
	}

	result := Evaluate(req.inputs())
	result.Project = req.project()

	resp := calculateResponse{Result: result}
	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindCapitalBudgeting, result); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindCapitalBudgeting, req.CompanyID, req, result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleCompare handles POST /compare
func (h *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Projects) == 0 {
		http.Error(w, "projects must not be empty", http.StatusBadRequest)
		return
	}
	for _, p := range req.Projects {
		if len(p.CashFlows) == 0 {
			http.Error(w, "every project needs at least one cash flow", http.StatusBadRequest)
			return
		}
	}

	results := make([]Result, len(req.Projects))
	for i, p := range req.Projects {
		results[i] = Evaluate(p.inputs())
		results[i].Project = p.project()
	}

	compare := CompareResult{
		Projects: results,
		Ranking:  Rank(results),
	}

	resp := compareResponse{CompareResult: compare}
	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindCapitalCompare, compare); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindCapitalCompare, req.CompanyID, req, compare)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
