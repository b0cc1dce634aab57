package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"hams-server/internal/config"
	"hams-server/internal/dashboard"
	"hams-server/internal/ledger"
	"hams-server/internal/logger"
	"hams-server/internal/metrics"
	"hams-server/internal/middleware"
	"hams-server/internal/models"
	"hams-server/internal/reference"
	"hams-server/internal/routes"
)

func main() {
	// A missing .env is fine, the process environment still applies.
	envErr := godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appLog := logger.New(cfg.LogLevel)
	startLog := appLog.WithComponent("main")
	if envErr != nil {
		startLog.WithError(envErr).Debug("no .env file loaded")
	}

	dir, err := reference.NewDemo()
	if err != nil {
		startLog.WithError(err).Fatal("failed to build reference directory")
	}

	store, err := openStore(cfg)
	if err != nil {
		startLog.WithError(err).Fatal("failed to open appointment store")
	}

	collector := metrics.NewCollector()
	book := ledger.New(store, dir, ledger.Config{
		Duration: cfg.Ledger.AppointmentDuration,
		Logger:   appLog,
		Recorder: collector,
	})

	if cfg.Ledger.SeedAppointments {
		if _, err := book.Seed(context.Background(), time.Now(), dir.Doctors(), dir.Patients("")); err != nil {
			startLog.WithError(err).Fatal("failed to seed appointments")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(appLog), middleware.Metrics(collector), gin.Recovery())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Dependencies{
		Config:    cfg,
		Logger:    appLog,
		Directory: dir,
		Ledger:    book,
		Dashboard: dashboard.NewBuilder(book, dir, time.Now),
		Metrics:   collector,
	})

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	startLog.WithField("port", cfg.Port).WithField("store", cfg.Ledger.Store).Info("server starting")
	if err := router.Run(serverAddr); err != nil {
		startLog.WithError(err).Fatal("failed to start server")
	}
}

// openStore picks the appointment store named by LEDGER_STORE.
func openStore(cfg *config.Config) (ledger.Store, error) {
	if cfg.Ledger.Store != "mysql" {
		return ledger.NewMemoryStore(), nil
	}
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return ledger.NewSQLStore(db), nil
}
