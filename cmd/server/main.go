package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/income-strategy/engine/internal/api"
	"github.com/income-strategy/engine/internal/config"
	"github.com/income-strategy/engine/internal/crypto"
	"github.com/income-strategy/engine/internal/database"
	"github.com/income-strategy/engine/internal/engine"
	"github.com/income-strategy/engine/internal/marketdata"
	"github.com/income-strategy/engine/internal/notify"
	"github.com/income-strategy/engine/internal/repository"
	"github.com/income-strategy/engine/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Credential encryption is optional; without a key the SMTP password is
	// simply never stored.
	var encryptor *crypto.Encryptor
	if cfg.Crypto.FernetKey != "" {
		encryptor, err = crypto.NewEncryptor(cfg.Crypto.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize credential encryption: %v", err)
		}
	}

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	dividendRepo := repository.NewDividendRepository(db)
	alertConfigRepo := repository.NewAlertConfigRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Market data gateway and the analytics engine
	gateway := marketdata.NewYahooGateway(cfg.MarketData.Timeout)
	eng := engine.Default()

	systemService := service.NewSystemService(db)
	// Create services
	settingsService := service.NewSettingsService(settingsRepo, encryptor)
	portfolioService := service.NewPortfolioService(
		holdingRepo,
		settingsService,
		gateway,
		eng,
		cfg.MarketData.Timeout,
	)
	dividendService := service.NewDividendService(dividendRepo)

	settings, err := settingsService.GetSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}
	var notifier notify.Notifier = notify.LogNotifier{}
	if settings.SMTPHost != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     settings.SMTPHost,
			Port:     settings.SMTPPort,
			Sender:   settings.SMTPSender,
			Password: settings.SMTPPassword,
		})
	}

	alertService := service.NewAlertService(
		portfolioService,
		dividendService,
		settingsService,
		alertConfigRepo,
		notifier,
		eng,
	)
	advisorService := service.NewAdvisorService(
		portfolioService,
		dividendService,
		settingsService,
		alertService,
		gateway,
		eng,
	)
	snapshotService := service.NewSnapshotService(snapshotRepo, portfolioService)

	// Background alert monitor
	var monitor *service.Monitor
	if cfg.Monitor.Schedule != "" {
		monitor = service.NewMonitor(alertService, cfg.Monitor.Schedule)
		if err := monitor.Start(); err != nil {
			log.Fatalf("Failed to start alert monitor: %v", err)
		}
	}

	// Create router
	router := api.NewRouter(
		systemService,
		portfolioService,
		advisorService,
		alertService,
		dividendService,
		settingsService,
		snapshotService,
		cfg,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if monitor != nil {
		monitor.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
