package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "points-backend/internal/api/http"
	"points-backend/internal/client"
	"points-backend/internal/config"
	"points-backend/internal/jobs"
	"points-backend/internal/logger"
	"points-backend/internal/repository/postgres"
	"points-backend/internal/scheduler"
	"points-backend/internal/security"
	"points-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting points backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Collaborators", "product_service", cfg.ProductService.BaseURL, "auth_service", cfg.AuthService.BaseURL)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	productClient := client.NewProductClient(cfg.ProductService.BaseURL, cfg.ProductService.Timeout())
	identityClient := client.NewIdentityClient(cfg.AuthService.BaseURL, cfg.AuthService.Timeout())

	verificationSvc := service.NewVerificationService(cfg.VerificationTTL(), cfg.Verification.TestCode)

	var sender service.CodeSender
	if cfg.Verification.Mode == "email" {
		logger.Info("Delivering verification codes via SendGrid", "from", cfg.SendGrid.FromEmail)
		sender = service.NewSendGridCodeSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		logger.Info("Delivering verification codes to the log (dev mode)")
		sender = service.NewLogCodeSender()
	}

	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	redemptionSvc := service.NewRedemptionService(
		store.LedgerRepository,
		store.RedemptionRepository,
		store.StockSyncRepository,
		verificationSvc,
		productClient,
		identityClient,
		sender,
		cfg.VerificationTTL(),
		cfg.Verification.Channel,
	)

	// Reconciliation sweep for stock decrements that failed post-commit
	jobRunner := jobs.NewJobRunner(store, productClient, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	echoCode := cfg.Verification.Mode == "log"
	handler := httpapi.NewPointsHandler(ledgerSvc, redemptionSvc, echoCode)
	router := httpapi.NewRouter(handler, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
