package dcf

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

// Handler handles DCF HTTP requests
type Handler struct {
	companies *companies.Repository
	runs      *runs.Repository
	narrative *narrative.Service
	log       zerolog.Logger
}

// NewHandler creates a new DCF handler
func NewHandler(
	companiesRepo *companies.Repository,
	runsRepo *runs.Repository,
	narrativeSvc *narrative.Service,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		companies: companiesRepo,
		runs:      runsRepo,
		narrative: narrativeSvc,
		log:       log.With().Str("handler", "dcf").Logger(),
	}
}

type calculateResponse struct {
	Result
	Narrative *string `json:"narrative,omitempty"`
}

// HandleCalculate handles POST /calculate
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in, errMsg := h.resolveInputs(req)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
	}

	resp := calculateResponse{Result: Valuate(in)}

	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindDCF, resp.Result); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindDCF, req.CompanyID, req, resp.Result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// resolveInputs expands the request into engine inputs: a single growth rate
// is broadcast across all projection years, and net debt is read from the
// company's latest stored statement when use_company_data is set.
func (h *Handler) resolveInputs(req CalculateRequest) (Inputs, string) {
	years := req.ProjectionYears
	if years == 0 {
		years = len(req.GrowthRates)
	}
	if years < 1 {
		return Inputs{}, "projection_years must be at least 1"
	}

	growthRates := make([]float64, years)
	switch {
	case len(req.GrowthRates) == years:
		for i, g := range req.GrowthRates {
			growthRates[i] = g.Float64()
		}
	case len(req.GrowthRates) == 1:
		for i := range growthRates {
			growthRates[i] = req.GrowthRates[0].Float64()
		}
	default:
		return Inputs{}, "growth_rates must have one entry per projection year"
	}

	netDebt := req.NetDebt.Float64()
	if req.UseCompanyData && req.CompanyID != nil {
		statement, err := h.companies.GetLatestStatement(*req.CompanyID)
		if err != nil {
			h.log.Error().Err(err).Int64("company_id", *req.CompanyID).Msg("Failed to load company financials")
		} else if statement != nil {
			if nd := statement.Data.NetDebt(); nd != nil {
				netDebt = *nd
			}
		}
	}

	return Inputs{
		InitialFCF:         req.InitialFCF.Float64(),
		GrowthRates:        growthRates,
		RiskFreeRate:       req.RiskFreeRate.Float64(),
		MarketRiskPremium:  req.MarketRiskPremium.Float64(),
		Beta:               req.Beta.Float64(),
		CostOfDebt:         req.CostOfDebt.Float64(),
		TaxRate:            req.TaxRate.Float64(),
		DebtWeight:         req.DebtWeight.Float64(),
		EquityWeight:       req.EquityWeight.Float64(),
		TerminalGrowthRate: req.TerminalGrowthRate.Float64(),
		NetDebt:            netDebt,
	}, ""
}
