package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultFifaAPIURL = "https://api.fifa.com/api/v1/calendar/matches?idseason=254645&idcompetition=17&language=en-GB&count=100"

// PredictionsSource selects where participant predictions are read from.
type PredictionsSource string

const (
	PredictionsFromFiles    PredictionsSource = "files"
	PredictionsFromPostgres PredictionsSource = "postgres"
	PredictionsFromR2       PredictionsSource = "r2"
)

type R2Config struct {
	AccountID         string
	AccessKeyID       string
	SecretAccessKey   string
	BucketName        string
	PublicBaseURL     string
	PredictionsPrefix string
}

// Config holds every runtime setting of the scoreboard server.
type Config struct {
	ServerPort         int
	LogLevel           slog.Level
	FifaAPIURL         string
	PredictionsSource  PredictionsSource
	PredictionsDir     string
	DatabaseURL        string
	R2                 R2Config
	BonusFile          string
	RefreshInterval    time.Duration
	ScoringConcurrency int
	JWTSecretKey       string
	AdminUsername      string
	AdminPasswordHash  string
	CORSAllowedOrigins []string
}

// Load reads the configuration from environment variables. A .env file in
// the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FifaAPIURL:        getEnvOrDefault("FIFA_API_URL", DefaultFifaAPIURL),
		PredictionsSource: PredictionsSource(strings.ToLower(getEnvOrDefault("PREDICTIONS_SOURCE", string(PredictionsFromFiles)))),
		PredictionsDir:    getEnvOrDefault("PREDICTIONS_DIR", "./predictions"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		R2: R2Config{
			AccountID:         os.Getenv("R2_ACCOUNT_ID"),
			AccessKeyID:       os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey:   os.Getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:        os.Getenv("R2_BUCKET_NAME"),
			PublicBaseURL:     os.Getenv("R2_PUBLIC_BASE_URL"),
			PredictionsPrefix: getEnvOrDefault("R2_PREDICTIONS_PREFIX", "predictions/"),
		},
		BonusFile:         os.Getenv("BONUS_FILE"),
		JWTSecretKey:      os.Getenv("JWT_SECRET_KEY"),
		AdminUsername:     getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	port, err := strconv.Atoi(getEnvOrDefault("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "INFO"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	interval, err := time.ParseDuration(getEnvOrDefault("REFRESH_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL environment variable: %w", err)
	}
	if interval < 0 {
		return nil, fmt.Errorf("REFRESH_INTERVAL must not be negative, got %s", interval)
	}
	cfg.RefreshInterval = interval

	concurrency, err := strconv.Atoi(getEnvOrDefault("SCORING_CONCURRENCY", "8"))
	if err != nil || concurrency <= 0 {
		return nil, fmt.Errorf("SCORING_CONCURRENCY must be a positive integer, got %q", os.Getenv("SCORING_CONCURRENCY"))
	}
	cfg.ScoringConcurrency = concurrency

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if err := cfg.validateSource(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateSource() error {
	switch c.PredictionsSource {
	case PredictionsFromFiles:
		if c.PredictionsDir == "" {
			return fmt.Errorf("PREDICTIONS_DIR must be set when PREDICTIONS_SOURCE is %q", c.PredictionsSource)
		}
	case PredictionsFromPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case PredictionsFromR2:
		if c.R2.AccountID == "" || c.R2.AccessKeyID == "" || c.R2.SecretAccessKey == "" || c.R2.BucketName == "" {
			return fmt.Errorf("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY and R2_BUCKET_NAME are required when PREDICTIONS_SOURCE is %q", c.PredictionsSource)
		}
	default:
		return fmt.Errorf("invalid PREDICTIONS_SOURCE %q (want files, postgres or r2)", c.PredictionsSource)
	}
	return nil
}

// AdminEnabled reports whether the admin login and refresh endpoints are served.
func (c *Config) AdminEnabled() bool {
	return c.JWTSecretKey != "" && c.AdminPasswordHash != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
