package dcf

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finsight/internal/database"
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/pkg/numeric"
)

func newTestHandler(t *testing.T) (*Handler, *companies.Repository) {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	companiesRepo := companies.NewRepository(db.Conn(), zerolog.Nop())
	runsRepo := runs.NewRepository(db.Conn(), zerolog.Nop())
	narrativeSvc := narrative.NewService(&narrative.DisabledProvider{}, time.Second, zerolog.Nop())
	return NewHandler(companiesRepo, runsRepo, narrativeSvc, zerolog.Nop()), companiesRepo
}

func TestHandleCalculate(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{
		"initial_fcf": 1000,
		"growth_rates": [0.10],
		"risk_free_rate": 0.04,
		"market_risk_premium": 0.05,
		"beta": 1.2,
		"equity_weight": 1.0,
		"terminal_growth_rate": 0.02,
		"net_debt": 750
	}`
	req := httptest.NewRequest("POST", "/dcf/calculate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCalculate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	equity, ok := resp.Summary.EquityValue.Float64()
	require.True(t, ok)
	assert.InDelta(t, 13000, equity, 0.01)
}

func TestHandleCalculate_BroadcastGrowthRate(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{
		"initial_fcf": 1000,
		"projection_years": 5,
		"growth_rates": [0.08],
		"risk_free_rate": 0.04,
		"market_risk_premium": 0.05,
		"beta": 1.2,
		"equity_weight": 1.0,
		"terminal_growth_rate": 0.02
	}`
	req := httptest.NewRequest("POST", "/dcf/calculate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCalculate(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Summary.ProjectedCashFlows, 5)
	for _, row := range resp.Summary.ProjectedCashFlows {
		assert.Equal(t, 0.08, row.GrowthRate)
	}
}

func TestHandleCalculate_GrowthRateMismatch(t *testing.T) {
	handler, _ := newTestHandler(t)

	body := `{
		"initial_fcf": 1000,
		"projection_years": 5,
		"growth_rates": [0.08, 0.07],
		"terminal_growth_rate": 0.02
	}`
	req := httptest.NewRequest("POST", "/dcf/calculate", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleCalculate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCalculate_NoYears(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/dcf/calculate", strings.NewReader(`{"initial_fcf": 1000}`))
	w := httptest.NewRecorder()
	handler.HandleCalculate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCalculate_CompanyNetDebt(t *testing.T) {
	handler, companiesRepo := newTestHandler(t)

	company, err := companiesRepo.Create("Acme Corp", nil)
	require.NoError(t, err)
	_, err = companiesRepo.UpsertStatement(company.ID, 2024, companies.StatementData{
		ShortTermDebt:      numeric.NewAmount(1000),
		LongTermDebt:       numeric.NewAmount(500),
		CashAndEquivalents: numeric.NewAmount(750),
	})
	require.NoError(t, err)

	in, errMsg := handler.resolveInputs(CalculateRequest{
		CompanyID:      &company.ID,
		UseCompanyData: true,
		InitialFCF:     numeric.NewAmount(1000),
		GrowthRates:    []numeric.Amount{numeric.NewAmount(0.05)},
	})
	require.Empty(t, errMsg)
	assert.InDelta(t, 750, in.NetDebt, 1e-9)
}
