// Package main provides the entry point for the ingestion daemon: it
// keeps fixtures, results and odds current and refreshes pick slates on
// a cron schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/config"
	"github.com/yourusername/edge-picks/internal/database"
	"github.com/yourusername/edge-picks/internal/health"
	"github.com/yourusername/edge-picks/internal/logger"
	"github.com/yourusername/edge-picks/internal/metrics"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/picks"
	"github.com/yourusername/edge-picks/internal/repository"
	"github.com/yourusername/edge-picks/internal/scheduler"
	"github.com/yourusername/edge-picks/internal/service"
)

// Build information set via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// resultLookbackDays is how far back each daily sync re-checks final
// scores; late corrections past this window are picked up by a manual
// SyncResults run.
const resultLookbackDays = 3

func main() {
	// Optional .env for local development; ignore when absent.
	_ = godotenv.Load()

	configPath := os.Getenv("EDGE_PICKS_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Edge Picks ingestion daemon starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	client := apisports.NewClient(apisports.ClientConfig{
		APIKey:            cfg.APISports.APIKey,
		Timeout:           cfg.ProviderTimeout(),
		MaxRetries:        cfg.APISports.RetryAttempts,
		RateLimit:         cfg.APISports.RateLimitPerSecond,
		CircuitBreakerMax: cfg.APISports.CircuitBreakerTrips,
		CacheTTL:          cfg.ProviderCacheTTL(),
		SoccerLeagueID:    cfg.APISports.SoccerLeagueID,
	}, appLog)

	validator := service.NewDataValidator(appLog)
	ingestionSvc := service.NewIngestionService(client, repos.Fixture, repos.Odds, validator, appLog, service.IngestionOptions{
		OddsEnabled:          cfg.Ingestion.OddsEnabled,
		PreferredBookmakerID: cfg.APISports.PreferredBookmakerID,
		LeagueOverride:       cfg.APISports.SoccerLeagueID,
	})

	engine := picks.NewEngine(client, picks.Config{
		LookbackDays:         cfg.Picks.LookbackDays,
		MaxOddsLookups:       cfg.Picks.MaxOddsLookups,
		PreferredBookmakerID: cfg.APISports.PreferredBookmakerID,
		MinEdgeThreshold:     cfg.Picks.MinEdgeThreshold,
	}, appLog)

	leagues := make([]models.League, 0, len(cfg.Picks.Leagues))
	for _, raw := range cfg.Picks.Leagues {
		league, err := models.ParseLeague(raw)
		if err != nil {
			appLog.WithError(err).Fatal("Invalid league in picks configuration")
		}
		leagues = append(leagues, league)
	}

	cronLog := log.New(os.Stdout, "scheduler: ", log.LstdFlags)
	sched := scheduler.NewScheduler(ingestionSvc, engine, repos.Pick, repos.Fixture, cronLog)

	if err := sched.ScheduleDailySync(cfg.Ingestion.DailySyncCron, leagues, resultLookbackDays); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule daily sync")
	}
	if cfg.Ingestion.SlateRefreshCron != "" {
		if err := sched.ScheduleSlateRefresh(cfg.Ingestion.SlateRefreshCron, leagues); err != nil {
			appLog.WithError(err).Fatal("Failed to schedule slate refresh")
		}
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.StartServer(fmt.Sprintf(":%d", cfg.Metrics.Port))
		appLog.WithField("port", cfg.Metrics.Port).Info("Metrics server started")
	}

	healthSrv := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		Port:        fmt.Sprintf("%d", cfg.Health.Port),
		Logger:      appLog,
		DB:          db,
		Jobs:        sched,
	})
	if err := healthSrv.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	healthSrv.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"leagues":       cfg.Picks.Leagues,
		"daily_sync":    cfg.Ingestion.DailySyncCron,
		"slate_refresh": cfg.Ingestion.SlateRefreshCron,
		"odds_enabled":  cfg.Ingestion.OddsEnabled,
	}).Info("Ingestion daemon running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	healthSrv.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}
	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Error during metrics server shutdown")
		}
		shutdownCancel()
	}

	appLog.Info("Ingestion daemon shut down successfully")
}
