package breakeven

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

// Handler handles break-even HTTP requests
type Handler struct {
	runs      *runs.Repository
	narrative *narrative.Service
	log       zerolog.Logger
}

// NewHandler creates a new break-even handler
func NewHandler(runsRepo *runs.Repository, narrativeSvc *narrative.Service, log zerolog.Logger) *Handler {
	return &Handler{
		runs:      runsRepo,
		narrative: narrativeSvc,
		log:       log.With().Str("handler", "breakeven").Logger(),
	}
}

type calculateResponse struct {
	Result
	Narrative *string `json:"narrative,omitempty"`
}

type whatIfResponse struct {
	WhatIfResult
	Narrative *string `json:"narrative,omitempty"`
}

// HandleCalculate handles POST /calculate
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := calculateResponse{Result: Calculate(req.inputs())}

	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindBreakEven, resp.Result); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindBreakEven, req.CompanyID, req, resp.Result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleWhatIf handles POST /what-if
func (h *Handler) HandleWhatIf(w http.ResponseWriter, r *http.Request) {
	var req WhatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	current, _, comparison := WhatIf(
		req.inputs(),
		req.PriceChangePercent.Float64(),
		req.VariableCostChangePercent.Float64(),
		req.FixedCostChangePercent.Float64(),
	)

	resp := whatIfResponse{
		WhatIfResult: WhatIfResult{
			Result:           current,
			WhatIfComparison: comparison,
		},
	}

	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindBreakEvenWhatIf, resp.WhatIfResult); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindBreakEvenWhatIf, req.CompanyID, req, resp.WhatIfResult)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
