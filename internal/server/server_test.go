package server

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

	"github.com/aristath/finsight/internal/config"
	"github.com/aristath/finsight/internal/database"
	"github.com/aristath/finsight/internal/modules/breakeven"
	"github.com/aristath/finsight/internal/modules/capital"
	"github.com/aristath/finsight/internal/modules/companies"
	"github.com/aristath/finsight/internal/modules/dcf"
	"github.com/aristath/finsight/internal/modules/montecarlo"
	"github.com/aristath/finsight/internal/modules/narrative"
	"github.com/aristath/finsight/internal/modules/ratios"
	"github.com/aristath/finsight/internal/modules/runs"
	"github.com/aristath/finsight/internal/modules/workingcapital"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	log := zerolog.Nop()
	companiesRepo := companies.NewRepository(db.Conn(), log)
	runsRepo := runs.NewRepository(db.Conn(), log)
	narrativeSvc := narrative.NewService(&narrative.DisabledProvider{}, time.Second, log)

	ratioBenchmarks, err := ratios.LoadBenchmarks()
	require.NoError(t, err)
	wcNorms, err := workingcapital.LoadNorms()
	require.NoError(t, err)

	return New(Config{
		Port:      0,
		Log:       log,
		DB:        db,
		Config:    &config.Config{Port: 0},
		Narrative: narrativeSvc,
		Handlers: Handlers{
			Ratios:         ratios.NewHandler(companiesRepo, ratioBenchmarks, runsRepo, narrativeSvc, log),
			BreakEven:      breakeven.NewHandler(runsRepo, narrativeSvc, log),
			Capital:        capital.NewHandler(runsRepo, narrativeSvc, log),
			DCF:            dcf.NewHandler(companiesRepo, runsRepo, narrativeSvc, log),
			MonteCarlo:     montecarlo.NewHandler(runsRepo, narrativeSvc, 100000, log),
			WorkingCapital: workingcapital.NewHandler(wcNorms, runsRepo, narrativeSvc, log),
			Companies:      companies.NewHandler(companiesRepo, log),
			Runs:           runs.NewHandler(runsRepo, log),
		},
		DevMode: true,
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "finsight", resp["service"])
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("GET", "/api/system/status", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "running", resp["status"])
	assert.Equal(t, "up", resp["database"])
	assert.Equal(t, false, resp["narrative"])
}

func TestRoutesWired(t *testing.T) {
	srv := newTestServer(t)

	// One request through each module's primary route
	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{
			"POST", "/api/break-even/calculate",
			`{"fixed_costs": 100000, "variable_cost_per_unit": 25, "selling_price_per_unit": 50}`,
			http.StatusOK,
		},
		{
			"POST", "/api/capital-budgeting/calculate",
			`{"initial_investment": 10000, "cash_flows": [5000, 5000, 5000], "discount_rate": 0.1}`,
			http.StatusOK,
		},
		{
			"POST", "/api/working-capital/analyze",
			`{"accounts_receivable": 500000, "inventory": 300000, "accounts_payable": 200000,
			  "revenue": 2000000, "cogs": 1200000}`,
			http.StatusOK,
		},
		{
			"POST", "/api/financial-ratios/calculate",
			`{"industry": "technology", "data": {"revenue": 1000, "cogs": 600}}`,
			http.StatusOK,
		},
		{"GET", "/api/ratio-benchmarks/retail", "", http.StatusOK},
		{"GET", "/api/companies/", "", http.StatusOK},
		{"GET", "/api/runs/", "", http.StatusOK},
		{"GET", "/api/no-such-route", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
