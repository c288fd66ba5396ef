// Package main provides the entry point for the backtesting tool: it
// replays historical slates through the pick model and reports how the
// picks would have performed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/backtest"
	"github.com/yourusername/edge-picks/internal/config"
	"github.com/yourusername/edge-picks/internal/database"
	"github.com/yourusername/edge-picks/internal/logger"
	"github.com/yourusername/edge-picks/internal/metrics"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/picks"
	"github.com/yourusername/edge-picks/internal/repository"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to configuration file")
		leaguesArg = flag.String("leagues", "", "Comma-separated leagues to replay (default: picks.leagues from config)")
		startDate  = flag.String("start-date", "", "Replay start date YYYY-MM-DD (default: backtest.start_date)")
		endDate    = flag.String("end-date", "", "Replay end date YYYY-MM-DD (default: backtest.end_date)")
		mode       = flag.String("mode", "historical", "Mode: historical, monte-carlo, windows, or all")
		output     = flag.String("output", "", "JSON report path (default: backtest.output_path)")
		equityCSV  = flag.String("equity-csv", "", "Write the replay equity curve to this CSV path")
		iterations = flag.Int("iterations", 1000, "Monte Carlo iterations")
		windowDays = flag.Int("window-days", 30, "Window length in days for consistency analysis")
		persist    = flag.Bool("persist", false, "Save replay results to the database")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
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

	leagues := cfg.Picks.Leagues
	if *leaguesArg != "" {
		leagues = strings.Split(*leaguesArg, ",")
	}

	btCfg, err := backtest.FromConfig(&cfg.Backtest, leagues)
	if err != nil {
		appLog.WithError(err).Fatal("Invalid backtest configuration")
	}
	if *startDate != "" {
		btCfg.StartDate, err = time.Parse("2006-01-02", *startDate)
		if err != nil {
			appLog.WithError(err).Fatal("Invalid -start-date")
		}
	}
	if *endDate != "" {
		btCfg.EndDate, err = time.Parse("2006-01-02", *endDate)
		if err != nil {
			appLog.WithError(err).Fatal("Invalid -end-date")
		}
	}
	btCfg.LeagueOverride = cfg.APISports.SoccerLeagueID

	client := apisports.NewClient(apisports.ClientConfig{
		APIKey:            cfg.APISports.APIKey,
		Timeout:           cfg.ProviderTimeout(),
		MaxRetries:        cfg.APISports.RetryAttempts,
		RateLimit:         cfg.APISports.RateLimitPerSecond,
		CircuitBreakerMax: cfg.APISports.CircuitBreakerTrips,
		CacheTTL:          cfg.ProviderCacheTTL(),
		SoccerLeagueID:    cfg.APISports.SoccerLeagueID,
	}, appLog)

	slates := picks.NewEngine(client, picks.Config{
		LookbackDays:         cfg.Picks.LookbackDays,
		MaxOddsLookups:       cfg.Picks.MaxOddsLookups,
		PreferredBookmakerID: cfg.APISports.PreferredBookmakerID,
		MinEdgeThreshold:     cfg.Picks.MinEdgeThreshold,
	}, appLog)

	engine, err := backtest.NewEngine(btCfg, client, slates, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create backtest engine")
	}

	ctx := context.Background()

	if *persist {
		db, err := database.Initialize(ctx, cfg)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		repos, err := repository.NewRepositories(db)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize repositories")
		}
		engine = engine.WithResultRepository(repos.BacktestResult)
	}

	appLog.WithFields(logrus.Fields{
		"mode":    *mode,
		"leagues": leagues,
		"start":   btCfg.StartDate.Format("2006-01-02"),
		"end":     btCfg.EndDate.Format("2006-01-02"),
	}).Info("Starting backtest")

	metrics.BacktestRunsTotal.Inc()

	var results []backtest.AggregatedResult
	for _, league := range btCfg.Leagues {
		result, state, err := runLeague(ctx, engine, league, *mode, *iterations, *windowDays)
		if err != nil {
			appLog.WithError(err).WithField("league", string(league)).Fatal("Backtest failed")
		}
		results = append(results, result)
		fmt.Print(backtest.GenerateConsoleReport(result))

		if *persist {
			if err := engine.SaveResult(ctx, result.ReplayMetrics, league); err != nil {
				appLog.WithError(err).WithField("league", string(league)).Error("Failed to persist backtest result")
			}
		}

		if *equityCSV != "" && state != nil {
			path := *equityCSV
			if len(btCfg.Leagues) > 1 {
				path = fmt.Sprintf("%s.%s.csv", strings.TrimSuffix(path, ".csv"), league)
			}
			if err := backtest.WriteEquityCurveCSV(state, path); err != nil {
				appLog.WithError(err).Error("Failed to write equity curve")
			}
		}
	}

	outPath := *output
	if outPath == "" {
		outPath = cfg.Backtest.OutputPath
	}
	if outPath != "" {
		if err := backtest.WriteJSONReport(results, outPath); err != nil {
			appLog.WithError(err).Fatal("Failed to write JSON report")
		}
		appLog.WithField("path", outPath).Info("Report written")
	}
}

// runLeague replays one league and layers on the analyses the mode asks
// for. The replay state is returned for equity curve export.
func runLeague(ctx context.Context, engine *backtest.Engine, league models.League, mode string, iterations, windowDays int) (backtest.AggregatedResult, *backtest.BacktestState, error) {
	cfg := engine.Config()

	state, replay, err := engine.Run(ctx, league, cfg.StartDate, cfg.EndDate)
	if err != nil {
		return backtest.AggregatedResult{}, nil, err
	}

	var (
		mc      backtest.MonteCarloResult
		windows backtest.WindowResult
	)

	switch mode {
	case "historical":
	case "monte-carlo":
		mc, err = backtest.RunMonteCarlo(ctx, state.Picks, backtest.MonteCarloConfig{
			Iterations:      iterations,
			InitialBankroll: cfg.InitialBankroll,
		})
		if err != nil {
			return backtest.AggregatedResult{}, nil, err
		}
	case "windows":
		windows, err = backtest.RunWindows(ctx, engine, league, backtest.WindowConfig{WindowDays: windowDays})
		if err != nil {
			return backtest.AggregatedResult{}, nil, err
		}
	case "all":
		mc, err = backtest.RunMonteCarlo(ctx, state.Picks, backtest.MonteCarloConfig{
			Iterations:      iterations,
			InitialBankroll: cfg.InitialBankroll,
		})
		if err != nil {
			return backtest.AggregatedResult{}, nil, err
		}
		windows, err = backtest.RunWindows(ctx, engine, league, backtest.WindowConfig{WindowDays: windowDays})
		if err != nil {
			return backtest.AggregatedResult{}, nil, err
		}
	default:
		return backtest.AggregatedResult{}, nil, fmt.Errorf("unknown mode %q", mode)
	}

	return backtest.AggregateResults(league, replay, mc, windows), state, nil
}
