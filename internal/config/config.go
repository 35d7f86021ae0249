package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Store drivers understood by the credential store factory.
const (
	DriverSQLite    = "sqlite"
	DriverPostgres  = "postgres"
	DriverFirestore = "firestore"
	DriverMemory    = "memory"
)

// Config holds the application configuration. It is built once at startup
// and handed to the components that need it.
type Config struct {
	ServerPort int
	AppEnv     string
	LogLevel   string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	PredictionURL     string
	PredictionTimeout time.Duration

	StoreDriver  string
	DatabasePath string // sqlite file
	DatabaseURL  string // postgres DSN

	FirebaseServiceAccount     string // raw service-account JSON
	FirebaseServiceAccountFile string
	FirestoreProjectID         string

	AllowedOrigins []string

	KeepWarmSchedule string
	KeepWarmURL      string
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("PREDICTION_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PREDICTION_TIMEOUT: %w", err)
	}

	cost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg := &Config{
		ServerPort:                 port,
		AppEnv:                     getEnv("APP_ENV", "development"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		JWTSecret:                  getEnv("JWT_SECRET", ""),
		TokenTTL:                   ttl,
		BcryptCost:                 cost,
		PredictionURL:              getEnv("PREDICTION_API_URL", "http://localhost:5000/predict"),
		PredictionTimeout:          timeout,
		StoreDriver:                strings.ToLower(getEnv("STORE_DRIVER", DriverSQLite)),
		DatabasePath:               getEnv("DATABASE_PATH", "./edu2job.db"),
		DatabaseURL:                getEnv("DATABASE_URL", ""),
		FirebaseServiceAccount:     getEnv("FIREBASE_SERVICE_ACCOUNT", ""),
		FirebaseServiceAccountFile: getEnv("FIREBASE_SERVICE_ACCOUNT_FILE", "./serviceAccountKey.json"),
		FirestoreProjectID:         getEnv("FIRESTORE_PROJECT_ID", ""),
		AllowedOrigins:             splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		KeepWarmSchedule:           getEnv("KEEPWARM_SCHEDULE", ""),
		KeepWarmURL:                getEnv("KEEPWARM_URL", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.ServerPort)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.PredictionTimeout <= 0 {
		return fmt.Errorf("PREDICTION_TIMEOUT must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.PredictionURL == "" {
		return fmt.Errorf("PREDICTION_API_URL must be set")
	}

	switch c.StoreDriver {
	case DriverSQLite, DriverMemory, DriverFirestore:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if (c.KeepWarmSchedule == "") != (c.KeepWarmURL == "") {
		return fmt.Errorf("KEEPWARM_SCHEDULE and KEEPWARM_URL must be set together")
	}
	return nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
