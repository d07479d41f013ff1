package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

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

// Handlers groups the per-module HTTP handlers wired in main
type Handlers struct {
	Ratios         *ratios.Handler
	BreakEven      *breakeven.Handler
	Capital        *capital.Handler
	DCF            *dcf.Handler
	MonteCarlo     *montecarlo.Handler
	WorkingCapital *workingcapital.Handler
	Companies      *companies.Handler
	Runs           *runs.Handler
}

// Config holds server configuration
type Config struct {
	Port      int
	Log       zerolog.Logger
	DB        *database.DB
	Config    *config.Config
	Narrative *narrative.Service
	Handlers  Handlers
	DevMode   bool
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	db        *database.DB
	cfg       *config.Config
	narrative *narrative.Service
	handlers  Handlers
	startedAt time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		db:        cfg.DB,
		cfg:       cfg.Config,
		narrative: cfg.Narrative,
		handlers:  cfg.Handlers,
		startedAt: time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout. Monte Carlo runs can take a while at the simulation cap.
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// System
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		// Financial ratios
		r.Route("/financial-ratios", func(r chi.Router) {
			r.Post("/calculate", s.handlers.Ratios.HandleCalculate)
			r.Get("/{companyID}", s.handlers.Ratios.HandleGetByCompany)
		})
		r.Get("/ratio-benchmarks/{industry}", s.handlers.Ratios.HandleGetBenchmarks)

		// Break-even / CVP
		r.Route("/break-even", func(r chi.Router) {
			r.Post("/calculate", s.handlers.BreakEven.HandleCalculate)
			r.Post("/what-if", s.handlers.BreakEven.HandleWhatIf)
		})

		// Capital budgeting
		r.Route("/capital-budgeting", func(r chi.Router) {
			r.Post("/calculate", s.handlers.Capital.HandleCalculate)
			r.Post("/compare", s.handlers.Capital.HandleCompare)
		})

		// DCF valuation
		r.Route("/dcf", func(r chi.Router) {
			r.Post("/calculate", s.handlers.DCF.HandleCalculate)
		})

		// Monte Carlo risk simulation
		r.Route("/monte-carlo", func(r chi.Router) {
			r.Post("/run", s.handlers.MonteCarlo.HandleRun)
		})

		// Working capital
		r.Route("/working-capital", func(r chi.Router) {
			r.Post("/analyze", s.handlers.WorkingCapital.HandleAnalyze)
		})

		// Companies and stored statements
		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.handlers.Companies.HandleList)
			r.Post("/", s.handlers.Companies.HandleCreate)
			r.Route("/{companyID}", func(r chi.Router) {
				r.Get("/", s.handlers.Companies.HandleGet)
				r.Delete("/", s.handlers.Companies.HandleDelete)
				r.Get("/statements", s.handlers.Companies.HandleListStatements)
				r.Post("/statements", s.handlers.Companies.HandleCreateStatement)
			})
		})

		// Calculation history
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handlers.Runs.HandleList)
			r.Get("/{runID}", s.handlers.Runs.HandleGet)
		})
	})
}

// Router exposes the configured router, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
