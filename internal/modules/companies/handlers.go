package companies

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles company HTTP requests
type Handler struct {
	repo *Repository
	log  zerolog.Logger
}

// NewHandler creates a new companies handler
func NewHandler(repo *Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "companies").Logger(),
	}
}

type createCompanyRequest struct {
	Name     string  `json:"name"`
	Industry *string `json:"industry"`
}

type createStatementRequest struct {
	FiscalYear int           `json:"fiscal_year"`
	Data       StatementData `json:"data"`
}

// HandleList handles GET /
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list companies")
		http.Error(w, "Failed to retrieve companies", http.StatusInternalServerError)
		return
	}
	if result == nil {
		result = []Company{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// HandleCreate handles POST /
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	company, err := h.repo.Create(req.Name, req.Industry)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to create company")
		http.Error(w, "Failed to create company", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(company)
}

// HandleGet handles GET /{companyID}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	company, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to get company")
		http.Error(w, "Failed to retrieve company", http.StatusInternalServerError)
		return
	}
	if company == nil {
		http.Error(w, "Company not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}

// HandleDelete handles DELETE /{companyID}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to delete company")
		http.Error(w, "Failed to delete company", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListStatements handles GET /{companyID}/statements
func (h *Handler) HandleListStatements(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	statements, err := h.repo.GetStatements(id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to list statements")
		http.Error(w, "Failed to retrieve statements", http.StatusInternalServerError)
		return
	}
	if statements == nil {
		statements = []Statement{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(statements)
}

// HandleCreateStatement handles POST /{companyID}/statements
func (h *Handler) HandleCreateStatement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.companyID(w, r)
	if !ok {
		return
	}

	var req createStatementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.FiscalYear < 1900 || req.FiscalYear > 2200 {
		http.Error(w, "fiscal_year out of range", http.StatusBadRequest)
		return
	}

	company, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to check company")
		http.Error(w, "Failed to store statement", http.StatusInternalServerError)
		return
	}
	if company == nil {
		http.Error(w, "Company not found", http.StatusNotFound)
		return
	}

	statement, err := h.repo.UpsertStatement(id, req.FiscalYear, req.Data)
	if err != nil {
		h.log.Error().Err(err).Int64("id", id).Msg("Failed to store statement")
		http.Error(w, "Failed to store statement", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(statement)
}

func (h *Handler) companyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "companyID"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid company ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
