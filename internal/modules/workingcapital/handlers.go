package workingcapital

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

// Handler handles working-capital HTTP requests
type Handler struct {
	norms     *NormsTable
	runs      *runs.Repository
	narrative *narrative.Service
	log       zerolog.Logger
}

// NewHandler creates a new working-capital handler
func NewHandler(norms *NormsTable, runsRepo *runs.Repository, narrativeSvc *narrative.Service, log zerolog.Logger) *Handler {
	return &Handler{
		norms:     norms,
		runs:      runsRepo,
		narrative: narrativeSvc,
		log:       log.With().Str("handler", "workingcapital").Logger(),
	}
}

type analyzeResponse struct {
	Result
	Narrative *string `json:"narrative,omitempty"`
}

// HandleAnalyze handles POST /working-capital/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bucket, norms := h.norms.ForIndustry(req.Industry)
	resp := analyzeResponse{Result: Analyze(req.inputs(), bucket, norms)}

	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindWorkingCapital, resp.Result); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindWorkingCapital, req.CompanyID, req, resp.Result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
