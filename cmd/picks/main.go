package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/edge-picks/internal/apisports"
	"github.com/yourusername/edge-picks/internal/config"
	applogger "github.com/yourusername/edge-picks/internal/logger"
	"github.com/yourusername/edge-picks/internal/markets"
	"github.com/yourusername/edge-picks/internal/models"
	"github.com/yourusername/edge-picks/internal/odds"
	"github.com/yourusername/edge-picks/internal/picks"
	"github.com/yourusername/edge-picks/internal/resolve"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var (
	configFile string
	leagueArg  string
	dateArg    string
	seasonArg  string
	betTypes   string
	asJSON     bool
	homeTeam   string
	awayTeam   string
	fixtureID  int64
	marketArg  string
	periodArg  string
	teamID     int
	playerID   int
	pageArg    int

	logger *logrus.Logger
	cfg    *config.Config
	client *apisports.Client
	engine *picks.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&leagueArg, "league", "l", "nba", "League (nba, nfl, ncaaf, ncaab, soccer)")
	rootCmd.PersistentFlags().StringVarP(&dateArg, "date", "d", "", "Slate date YYYY-MM-DD (default: today UTC)")
	rootCmd.PersistentFlags().StringVarP(&seasonArg, "season", "s", "", "Season override (e.g. 2024)")

	slateCmd.Flags().StringVarP(&betTypes, "bet-types", "b", "", "Comma-separated bet types (moneyline, spread, total)")
	slateCmd.Flags().BoolVar(&asJSON, "json", false, "Emit the slate as JSON")

	resolveCmd.Flags().StringVar(&homeTeam, "team", "", "Team name to resolve (required)")
	resolveCmd.Flags().StringVar(&awayTeam, "opponent", "", "Opposing team name (optional)")

	oddsCmd.Flags().Int64Var(&fixtureID, "fixture", 0, "Provider fixture id (required)")
	oddsCmd.Flags().StringVar(&marketArg, "market", "", "Restrict to one market (moneyline, spread, total)")
	oddsCmd.Flags().StringVar(&periodArg, "period", "game", "Period for --market (game, 1h, 2h, 1q, 2q, 3q, 4q)")

	bookmakersCmd.Flags().Int64Var(&fixtureID, "fixture", 0, "Provider fixture id (required)")

	injuriesCmd.Flags().IntVar(&teamID, "team", 0, "Provider team id")
	injuriesCmd.Flags().IntVar(&playerID, "player", 0, "Provider player id")

	teamStatsCmd.Flags().IntVar(&teamID, "team", 0, "Provider team id")

	playerStatsCmd.Flags().IntVar(&teamID, "team", 0, "Provider team id")
	playerStatsCmd.Flags().IntVar(&pageArg, "page", 0, "Result page")
}

var rootCmd = &cobra.Command{
	Use:   "picks",
	Short: "Generate probability-based picks from the command line",
	Long:  `Build pick slates, resolve fixtures from team names, and inspect normalized bookmaker odds.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
}

var slateCmd = &cobra.Command{
	Use:   "slate",
	Short: "Build a pick slate for a league and date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return buildSlate(ctx)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a fixture from free-form team names",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return resolveFixture(ctx)
	},
}

var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Fetch and normalize bookmaker odds for a fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return showOdds(ctx)
	},
}

var bookmakersCmd = &cobra.Command{
	Use:   "bookmakers",
	Short: "List the bookmakers quoting a fixture",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return showBookmakers(ctx)
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Fetch the league table for a season",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return showStandings(ctx)
	},
}

var injuriesCmd = &cobra.Command{
	Use:   "injuries",
	Short: "Fetch the current injury report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return showInjuries(ctx)
	},
}

var teamStatsCmd = &cobra.Command{
	Use:   "team-stats",
	Short: "Fetch season-level team statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return showTeamStats(ctx)
	},
}

var playerStatsCmd = &cobra.Command{
	Use:   "player-stats",
	Short: "Fetch per-player season statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		return showPlayerStats(ctx)
	},
}

func main() {
	rootCmd.AddCommand(slateCmd, resolveCmd, oddsCmd, bookmakersCmd, standingsCmd, injuriesCmd, teamStatsCmd, playerStatsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}
	return config.Validate(cfg)
}

func setupDependencies() error {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	client = apisports.NewClient(apisports.ClientConfig{
		APIKey:            cfg.APISports.APIKey,
		Timeout:           cfg.ProviderTimeout(),
		MaxRetries:        cfg.APISports.RetryAttempts,
		RateLimit:         cfg.APISports.RateLimitPerSecond,
		CircuitBreakerMax: cfg.APISports.CircuitBreakerTrips,
		CacheTTL:          cfg.ProviderCacheTTL(),
		SoccerLeagueID:    cfg.APISports.SoccerLeagueID,
	}, logger)

	engine = picks.NewEngine(client, picks.Config{
		LookbackDays:         cfg.Picks.LookbackDays,
		MaxOddsLookups:       cfg.Picks.MaxOddsLookups,
		PreferredBookmakerID: cfg.APISports.PreferredBookmakerID,
		MinEdgeThreshold:     cfg.Picks.MinEdgeThreshold,
	}, logger)

	return nil
}

func slateDate() string {
	if dateArg != "" {
		return dateArg
	}
	return time.Now().UTC().Format("2006-01-02")
}

func parseLeagueArg() (models.League, error) {
	return models.ParseLeague(leagueArg)
}

func buildSlate(ctx context.Context) error {
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	var types []models.BetType
	if betTypes != "" {
		for _, raw := range strings.Split(betTypes, ",") {
			types = append(types, models.BetType(strings.TrimSpace(raw)))
		}
	}

	slate, err := engine.BuildSlate(ctx, picks.SlateRequest{
		League:         league,
		Date:           slateDate(),
		Season:         seasonArg,
		BetTypes:       types,
		LeagueOverride: cfg.APISports.SoccerLeagueID,
	})
	if err != nil {
		return err
	}

	if asJSON {
		data, err := json.MarshalIndent(slate, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(slate) == 0 {
		fmt.Printf("No picks for %s on %s\n", league, slateDate())
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BET\tSELECTION\tLINE\tPRICE\tWIN PROB\tEDGE")
	for _, p := range slate {
		line := "-"
		if p.Line != nil {
			line = fmt.Sprintf("%.1f", *p.Line)
		}
		price := "-"
		if p.Price != nil {
			price = p.Price.Value.StringFixed(2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\t%+.1f%%\n",
			p.BetType, p.Selection, line, price, p.WinProb*100, p.Edge*100)
	}
	return w.Flush()
}

func resolveFixture(ctx context.Context) error {
	if homeTeam == "" {
		return fmt.Errorf("--team is required")
	}
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	resolver := resolve.NewResolver(client, logger)
	result, err := resolver.Resolve(ctx, resolve.Query{
		League:         league,
		Date:           slateDate(),
		HomeTeam:       homeTeam,
		AwayTeam:       awayTeam,
		Season:         seasonArg,
		LeagueOverride: cfg.APISports.SoccerLeagueID,
	})
	if err != nil {
		return err
	}

	f := result.Fixture
	fmt.Printf("✓ Resolved fixture %d: %s vs %s\n", f.ProviderID, f.HomeTeam, f.AwayTeam)
	fmt.Printf("  Start: %s\n", f.StartTime.Format(time.RFC3339))
	fmt.Printf("  Status: %s\n", f.Status)
	for _, c := range result.Candidates {
		fmt.Printf("  candidate (score %d): %s vs %s\n", c.Score, c.Fixture.HomeTeam, c.Fixture.AwayTeam)
	}
	return nil
}

func showOdds(ctx context.Context) error {
	if fixtureID == 0 {
		return fmt.Errorf("--fixture is required")
	}
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	query := apisports.OddsQuery{
		League:      league,
		FixtureID:   fixtureID,
		BookmakerID: cfg.APISports.PreferredBookmakerID,
	}
	if marketArg != "" {
		betID := markets.ResolveBetID(league, models.BetType(marketArg), models.Period(periodArg))
		if betID == 0 {
			return fmt.Errorf("no %s market for %s %s", marketArg, league, periodArg)
		}
		query.BetID = betID
	}

	payload, err := client.OddsForFixture(ctx, query)
	if err != nil {
		return err
	}

	book := odds.Normalize(payload, league, fixtureID, cfg.APISports.PreferredBookmakerID)
	if book == nil {
		fmt.Printf("No odds available for fixture %d\n", fixtureID)
		return nil
	}

	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func showBookmakers(ctx context.Context) error {
	if fixtureID == 0 {
		return fmt.Errorf("--fixture is required")
	}
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	bookmakers, err := client.BookmakersForFixture(ctx, league, fixtureID)
	if err != nil {
		return err
	}
	if len(bookmakers) == 0 {
		fmt.Printf("No bookmakers quoting fixture %d\n", fixtureID)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, bm := range bookmakers {
		fmt.Fprintf(w, "%d\t%s\n", bm.ID, bm.Name)
	}
	return w.Flush()
}

func showStandings(ctx context.Context) error {
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	payload, err := client.Standings(ctx, league, seasonArg, cfg.APISports.SoccerLeagueID)
	if err != nil {
		return err
	}
	return printRaw(payload)
}

func showInjuries(ctx context.Context) error {
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	payload, err := client.Injuries(ctx, apisports.InjuriesQuery{
		League:         league,
		Season:         seasonArg,
		LeagueOverride: cfg.APISports.SoccerLeagueID,
		TeamID:         teamID,
		PlayerID:       playerID,
	})
	if err != nil {
		return err
	}
	return printRaw(payload)
}

func showTeamStats(ctx context.Context) error {
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	payload, err := client.TeamStatistics(ctx, league, seasonArg, teamID, cfg.APISports.SoccerLeagueID)
	if err != nil {
		return err
	}
	return printRaw(payload)
}

func showPlayerStats(ctx context.Context) error {
	league, err := parseLeagueArg()
	if err != nil {
		return err
	}

	payload, err := client.PlayerStatistics(ctx, league, seasonArg, teamID, pageArg)
	if err != nil {
		return err
	}
	return printRaw(payload)
}

func printRaw(payload json.RawMessage) error {
	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		return err
	}
	fmt.Println(out.String())
	return nil
}
