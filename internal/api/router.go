package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/income-strategy/engine/internal/api/handlers"
	custommiddleware "github.com/income-strategy/engine/internal/api/middleware"
	"github.com/income-strategy/engine/internal/config"
	"github.com/income-strategy/engine/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	portfolioService *service.PortfolioService,
	advisorService *service.AdvisorService,
	alertService *service.AlertService,
	dividendService *service.DividendService,
	settingsService *service.SettingsService,
	snapshotService *service.SnapshotService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/", portfolioHandler.Portfolio)
			r.Get("/metrics", portfolioHandler.Metrics)

			r.Route("/{ticker}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTickerMiddleware)
				r.Put("/", portfolioHandler.UpdateHolding)
			})
		})

		r.Route("/advisor", func(r chi.Router) {
			advisorHandler := handlers.NewAdvisorHandler(advisorService)
			r.Get("/weekly", advisorHandler.Weekly)
			r.Get("/rebalance", advisorHandler.Rebalance)
			r.Get("/risk", advisorHandler.Risk)
			r.Get("/recommendations", advisorHandler.Recommendations)
			r.Get("/projection", advisorHandler.Projection)
			r.Get("/news", advisorHandler.News)
		})

		r.Route("/alerts", func(r chi.Router) {
			alertHandler := handlers.NewAlertHandler(alertService)
			r.Get("/", alertHandler.Alerts)
			r.Get("/config", alertHandler.Configs)

			r.Route("/config/{ticker}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTickerMiddleware)
				r.Get("/", alertHandler.Config)
				r.Put("/", alertHandler.UpdateConfig)
			})
		})

		r.Route("/dividends", func(r chi.Router) {
			dividendHandler := handlers.NewDividendHandler(dividendService)

			r.Route("/record/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/verify", dividendHandler.Verify)
			})

			r.Route("/{ticker}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateTickerMiddleware)
				r.Get("/", dividendHandler.History)
				r.Post("/", dividendHandler.Create)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(settingsService)
			r.Get("/", settingsHandler.Settings)
			r.Put("/", settingsHandler.Update)
		})

		r.Route("/snapshots", func(r chi.Router) {
			snapshotHandler := handlers.NewSnapshotHandler(snapshotService)
			r.Post("/", snapshotHandler.Create)
			r.Get("/", snapshotHandler.List)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", snapshotHandler.Get)
				r.Delete("/", snapshotHandler.Delete)
			})
		})
	})

	return r
}
