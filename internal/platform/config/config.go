package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends selectable at start-up.
const (
	StoreBackendPgx  = "pgx"
	StoreBackendGorm = "gorm"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	RunMigrations bool
	JWTSecret     string

	StoreBackend string            // pgx or gorm, fixed for the process lifetime
	LadderMode   domain.LadderMode // live or frozen traversal of the approval ladder

	RateLimit        string // ulule/limiter formatted rate, e.g. "300-M"
	RedisAddr        string // empty keeps the limiter store in memory
	RedisPassword    string
	NATSURL          string // empty disables event publishing
	NATSSubjectRoot  string
	CORSAllowOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("STORE_BACKEND", StoreBackendPgx)
	v.SetDefault("LADDER_MODE", string(domain.LadderLive))
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("NATS_URL", "")
	v.SetDefault("NATS_SUBJECT_ROOT", "waste")
	v.SetDefault("CORS_ALLOW_ORIGINS", "")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:   v.GetBool("RUN_MIGRATIONS"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		StoreBackend:    strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
		LadderMode:      domain.LadderMode(strings.ToLower(strings.TrimSpace(v.GetString("LADDER_MODE")))),
		RateLimit:       v.GetString("RATE_LIMIT"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		NATSURL:         v.GetString("NATS_URL"),
		NATSSubjectRoot: v.GetString("NATS_SUBJECT_ROOT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	switch cfg.StoreBackend {
	case StoreBackendPgx, StoreBackendGorm:
	default:
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: must be %s or %s", cfg.StoreBackend, StoreBackendPgx, StoreBackendGorm)
	}

	if !cfg.LadderMode.IsValid() {
		return nil, fmt.Errorf("invalid LADDER_MODE %q: must be %s or %s", cfg.LadderMode, domain.LadderLive, domain.LadderFrozen)
	}

	if cfg.NATSSubjectRoot == "" {
		cfg.NATSSubjectRoot = "waste"
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOW_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowOrigins = append(cfg.CORSAllowOrigins, origin)
		}
	}

	return cfg, nil
}
