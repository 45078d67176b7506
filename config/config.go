package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=b3rank
//	FUNDAMENTUS_RATE_LIMIT=2
//	FETCH_PARALLEL=4
//	OUTPUT_DIR=./data
//	SMALLCAP_THRESHOLD=300000000
type Config struct {
	Server      ServerConfig
	Postgres    PostgresConfig
	Fundamentus FundamentusConfig
	Ranking     RankingConfig
	Storage     StorageConfig
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string
}

// PostgresConfig defines connection details for PostgreSQL. URL is the
// computed DSN used by database/sql.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// FundamentusConfig controls the scraper.
type FundamentusConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	RateLimit float64 // requests per second; <= 0 disables throttling
	Parallel  int     // concurrent detail-page fetches; 0 = auto
}

// RankingConfig holds the tunables of the ranking pipeline.
type RankingConfig struct {
	SmallCapThreshold float64
	TopN              int
}

// StorageConfig holds file locations.
type StorageConfig struct {
	CacheFile string // per-ticker metadata cache
	OutputDir string // root of results/ and json/
}

// AppConfig is the globally accessible configuration instance, populated by LoadConfig.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit: validateConfig() terminates the app when required fields are missing or invalid.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "b3rank")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("FUNDAMENTUS_BASE_URL", "https://www.fundamentus.com.br")
	viper.SetDefault("FUNDAMENTUS_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	viper.SetDefault("FUNDAMENTUS_TIMEOUT", "30s")
	viper.SetDefault("FUNDAMENTUS_RATE_LIMIT", 2.0)
	viper.SetDefault("FETCH_PARALLEL", 0)

	viper.SetDefault("SMALLCAP_THRESHOLD", 300_000_000.0)
	viper.SetDefault("TOP_N", 30)

	viper.SetDefault("CACHE_FILE", "./data/ticker.json")
	viper.SetDefault("OUTPUT_DIR", "./data")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Fundamentus: FundamentusConfig{
			BaseURL:   viper.GetString("FUNDAMENTUS_BASE_URL"),
			UserAgent: viper.GetString("FUNDAMENTUS_USER_AGENT"),
			Timeout:   viper.GetDuration("FUNDAMENTUS_TIMEOUT"),
			RateLimit: viper.GetFloat64("FUNDAMENTUS_RATE_LIMIT"),
			Parallel:  viper.GetInt("FETCH_PARALLEL"),
		},
		Ranking: RankingConfig{
			SmallCapThreshold: viper.GetFloat64("SMALLCAP_THRESHOLD"),
			TopN:              viper.GetInt("TOP_N"),
		},
		Storage: StorageConfig{
			CacheFile: viper.GetString("CACHE_FILE"),
			OutputDir: viper.GetString("OUTPUT_DIR"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// problems lists every missing or invalid setting of cfg by its variable name.
func problems(cfg Config) []string {
	var out []string

	if cfg.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if cfg.Postgres.Host == "" {
		out = append(out, "POSTGRES_HOST")
	}
	if cfg.Postgres.Port == 0 {
		out = append(out, "POSTGRES_PORT")
	}
	if cfg.Postgres.User == "" {
		out = append(out, "POSTGRES_USER")
	}
	if cfg.Postgres.Password == "" {
		out = append(out, "POSTGRES_PASSWORD")
	}
	if cfg.Postgres.DBName == "" {
		out = append(out, "POSTGRES_DB")
	}
	if cfg.Fundamentus.BaseURL == "" {
		out = append(out, "FUNDAMENTUS_BASE_URL")
	}
	if cfg.Fundamentus.Timeout <= 0 {
		out = append(out, "FUNDAMENTUS_TIMEOUT")
	}
	if cfg.Fundamentus.Parallel < 0 {
		out = append(out, "FETCH_PARALLEL")
	}
	if cfg.Ranking.TopN < 1 {
		out = append(out, "TOP_N")
	}
	if cfg.Ranking.SmallCapThreshold < 0 {
		out = append(out, "SMALLCAP_THRESHOLD")
	}
	if cfg.Storage.CacheFile == "" {
		out = append(out, "CACHE_FILE")
	}
	if cfg.Storage.OutputDir == "" {
		out = append(out, "OUTPUT_DIR")
	}
	return out
}

// validateConfig terminates the application with log.Fatalf when AppConfig
// has missing or invalid settings.
func validateConfig() {
	if p := problems(AppConfig); len(p) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", p)
	}
}
