package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port                 string
	Origin               string
	Environment          string
	LogLevel             string
	JWTSecret            string
	JWTExpirationMinutes int
	Ledger               LedgerConfig
	Database             DatabaseConfig
}

// LedgerConfig controls the appointment book.
type LedgerConfig struct {
	// Store is "memory" (session scoped, default) or "mysql".
	Store               string
	AppointmentDuration time.Duration
	SimulatedLatency    time.Duration
	SeedAppointments    bool
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hams"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	jwtExpMinutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}

	durationMinutes, err := strconv.Atoi(getEnv("APPOINTMENT_DURATION_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid APPOINTMENT_DURATION_MINUTES: %w", err)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("invalid APPOINTMENT_DURATION_MINUTES: must be positive, got %d", durationMinutes)
	}

	latencyMs, err := strconv.Atoi(getEnv("SIMULATED_LATENCY_MS", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIMULATED_LATENCY_MS: %w", err)
	}

	seed, err := strconv.ParseBool(getEnv("SEED_APPOINTMENTS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_APPOINTMENTS: %w", err)
	}

	store := strings.ToLower(getEnv("LEDGER_STORE", "memory"))
	if store != "memory" && store != "mysql" {
		return nil, fmt.Errorf("invalid LEDGER_STORE %q: want memory or mysql", store)
	}

	return &Config{
		Port:                 getEnv("PORT", "3001"),
		Origin:               getEnv("ORIGIN", "http://localhost:5173"),
		Environment:          getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		JWTSecret:            getEnv("JWT_SECRET", "default_jwt_secret"),
		JWTExpirationMinutes: jwtExpMinutes,
		Ledger: LedgerConfig{
			Store:               store,
			AppointmentDuration: time.Duration(durationMinutes) * time.Minute,
			SimulatedLatency:    time.Duration(latencyMs) * time.Millisecond,
			SeedAppointments:    seed,
		},
		Database: dbConfig,
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
