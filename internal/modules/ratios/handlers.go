package ratios

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

// Handler handles financial-ratio HTTP requests
type Handler struct {
	companies  *companies.Repository
	benchmarks *BenchmarkTable
	runs       *runs.Repository
	narrative  *narrative.Service
	log        zerolog.Logger
}

// NewHandler creates a new ratios handler
func NewHandler(
	companiesRepo *companies.Repository,
	benchmarks *BenchmarkTable,
	runsRepo *runs.Repository,
	narrativeSvc *narrative.Service,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		companies:  companiesRepo,
		benchmarks: benchmarks,
		runs:       runsRepo,
		narrative:  narrativeSvc,
		log:        log.With().Str("handler", "ratios").Logger(),
	}
}

type ratiosResponse struct {
	CompanyID  *int64             `json:"company_id,omitempty"`
	FiscalYear *int               `json:"fiscal_year,omitempty"`
	Industry   string             `json:"industry"`
	Ratios     Result             `json:"ratios"`
	Benchmarks IndustryBenchmarks `json:"benchmarks"`
	Narrative  *string            `json:"narrative,omitempty"`
	Flags      []string           `json:"flags,omitempty"`
}

// HandleCalculate handles POST /financial-ratios/calculate - raw inputs
func (h *Handler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	bucket, benchmarks := h.benchmarks.ForIndustry(req.Industry)
	resp := ratiosResponse{
		CompanyID:  req.CompanyID,
		Industry:   bucket,
		Ratios:     Calculate(InputsFromStatement(req.Data)),
		Benchmarks: benchmarks,
	}

	if req.Analyze {
		if text, ok := h.narrative.Commentary(r.Context(), runs.KindRatios, resp.Ratios); ok {
			resp.Narrative = &text
		} else {
			resp.Flags = append(resp.Flags, numeric.ReasonNarrativeUnavailable)
		}
	}

	h.runs.Record(runs.KindRatios, req.CompanyID, req, resp.Ratios)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleGetByCompany handles GET /financial-ratios/{companyID} - ratios from
// the company's latest stored statement
func (h *Handler) HandleGetByCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return
	}

	company, err := h.companies.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to get company")
		http.Error(w, "Failed to retrieve company", http.StatusInternalServerError)
		return
	}
	if company == nil {
		http.Error(w, "Company not found", http.StatusNotFound)
		return
	}

	statement, err := h.companies.GetLatestStatement(id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to get statement")
		http.Error(w, "Failed to retrieve financials", http.StatusInternalServerError)
		return
	}
	if statement == nil {
		http.Error(w, "No financial statements for company", http.StatusNotFound)
		return
	}

	industry := ""
	if company.Industry != nil {
		industry = *company.Industry
	}
	bucket, benchmarks := h.benchmarks.ForIndustry(industry)

	resp := ratiosResponse{
		CompanyID:  &id,
		FiscalYear: &statement.FiscalYear,
		Industry:   bucket,
		Ratios:     Calculate(InputsFromStatement(statement.Data)),
		Benchmarks: benchmarks,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleGetBenchmarks handles GET /ratio-benchmarks/{industry}
func (h *Handler) HandleGetBenchmarks(w http.ResponseWriter, r *http.Request) {
	bucket, benchmarks := h.benchmarks.ForIndustry(chi.URLParam(r, "industry"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"industry":   bucket,
		"benchmarks": benchmarks,
	})
}
