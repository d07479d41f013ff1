package montecarlo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

// Handler handles Monte Carlo HTTP requests
type Handler struct {
	runs           *runs.Repository
	narrative      *narrative.Service
	maxSimulations int
	log            zerolog.Logger
}

// NewHandler creates a new Monte Carlo handler
func NewHandler(runsRepo *runs.Repository, narrativeSvc *narrative.Service, maxSimulations int, log zerolog.Logger) *Handler {
	return &Handler{
		runs:           runsRepo,
		narrative:      narrativeSvc,
		maxSimulations: maxSimulations,
		log:            log.With().Str("handler", "montecarlo").Logger(),
	}
}

type runResponse struct {
	Result
	Narrative *string `json:"narrative,omitempty"`
}

// HandleRun handles POST /run
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	in, err := h.resolveInputs(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	started := time.Now()
	result, err := Run(r.Context(), in)
	if err != nil {
		// Client went away or the request timed out mid-simulation
		h.log.Warn().Err(err).Int("trials", in.NumSimulations).Msg("Simulation aborted")
		http.Error(w, "Simulation aborted", http.StatusRequestTimeout)
		return
	}
	h.log.Info().
		Int("trials", in.NumSimulations).
		Int("years", in.ProjectionYears).
		Dur("duration_ms", time.Since(started)).
		Msg("Simulation complete")

	resp := runResponse{Result: result}
	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindMonteCarlo, result.Summary); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindMonteCarlo, req.CompanyID, req, result)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) resolveInputs(req RunRequest) (Inputs, error) {
	if req.NumSimulations < 1 {
		return Inputs{}, fmt.Errorf("num_simulations must be positive")
	}
	if req.NumSimulations > h.maxSimulations {
		return Inputs{}, fmt.Errorf("num_simulations must not exceed %d", h.maxSimulations)
	}
	if req.ProjectionYears < 1 {
		return Inputs{}, fmt.Errorf("projection_years must be at least 1")
	}

	in := Inputs{
		NumSimulations:    req.NumSimulations,
		ProjectionYears:   req.ProjectionYears,
		BaseRevenue:       req.BaseRevenue.Float64(),
		BaseOpex:          req.BaseOperatingExpenses.Float64(),
		InitialInvestment: req.InitialInvestment.Float64(),
		TaxRate:           req.TaxRate.Float64(),
	}

	if req.Seed != nil {
		in.Seed = *req.Seed
	} else {
		in.Seed = time.Now().UnixNano()
	}

	for name, target := range map[string]*Distribution{
		VarRevenueGrowth: &in.RevenueGrowth,
		VarCostRatio:     &in.CostRatio,
		VarOpexGrowth:    &in.OpexGrowth,
		VarDiscountRate:  &in.DiscountRate,
	} {
		spec, ok := req.Variables[name]
		if !ok {
			return Inputs{}, fmt.Errorf("missing variable %q", name)
		}
		dist := spec.distribution()
		if err := dist.Validate(name); err != nil {
			return Inputs{}, err
		}
		*target = dist
	}

	return in, nil
}
