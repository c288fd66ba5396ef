// Package config provides configuration management for the Edge Picks application.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	APISports APISportsConfig `mapstructure:"apisports" validate:"required"`
	Picks     PicksConfig     `mapstructure:"picks" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion" validate:"required"`
	Backtest  BacktestConfig  `mapstructure:"backtest" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Health    HealthConfig    `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// APISportsConfig represents API-SPORTS provider configuration
type APISportsConfig struct {
	APIKey               string  `mapstructure:"api_key" validate:"required"`
	SoccerLeagueID       int     `mapstructure:"soccer_league_id" validate:"omitempty,gt=0"`
	TimeoutSeconds       int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts        int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond   float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	CacheTTLSeconds      int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CircuitBreakerTrips  int     `mapstructure:"circuit_breaker_trips" validate:"required,gt=0"`
	PreferredBookmakerID int     `mapstructure:"preferred_bookmaker_id" validate:"gte=0"`
}

// PicksConfig represents picks engine configuration
type PicksConfig struct {
	Leagues          []string `mapstructure:"leagues" validate:"required,min=1,leagues"`
	LookbackDays     int      `mapstructure:"lookback_days" validate:"required,gt=0"`
	MaxOddsLookups   int      `mapstructure:"max_odds_lookups" validate:"required,gt=0"`
	MinEdgeThreshold float64  `mapstructure:"min_edge_threshold" validate:"gte=0,lte=1"`
}

// IngestionConfig represents ingestion pipeline configuration
type IngestionConfig struct {
	DailySyncCron    string `mapstructure:"daily_sync_cron" validate:"required"`
	SlateRefreshCron string `mapstructure:"slate_refresh_cron" validate:"required"`
	OddsEnabled      bool   `mapstructure:"odds_enabled"`
	BatchSize        int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate       string  `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         string  `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	InitialBankroll float64 `mapstructure:"initial_bankroll" validate:"required,gt=0"`
	FlatStake       float64 `mapstructure:"flat_stake" validate:"required,gt=0"`
	OutputPath      string  `mapstructure:"output_path" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig represents the health endpoint configuration
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ProviderTimeout returns the API-SPORTS request timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.APISports.TimeoutSeconds) * time.Second
}

// ProviderCacheTTL returns the API-SPORTS response cache TTL as a duration
func (c *Config) ProviderCacheTTL() time.Duration {
	return time.Duration(c.APISports.CacheTTLSeconds) * time.Second
}
