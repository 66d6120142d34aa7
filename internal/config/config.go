package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// SpendScope selects how budget spend is aggregated.
type SpendScope string

const (
	// SpendScopeGlobal sums every transaction whose category label matches,
	// across all owners and all dates.
	SpendScopeGlobal SpendScope = "global"
	// SpendScopeBudget restricts the sum to the budget owner and the
	// budget's own validity window.
	SpendScopeBudget SpendScope = "budget"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// JWT
	JWTSecret string

	// Budgets
	SpendScope       SpendScope
	SpendConcurrency int

	// Events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "spendwise"),
		DBPassword: getEnv("DB_PASSWORD", "spendwise"),
		DBName:     getEnv("DB_NAME", "spendwise"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "spendwise.db"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendwise.events"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "spendwise.events"),
	}

	config.SpendScope = parseSpendScope(getEnv("SPEND_SCOPE", string(SpendScopeGlobal)))
	config.SpendConcurrency = parsePositiveInt("BUDGET_SPEND_CONCURRENCY", getEnv("BUDGET_SPEND_CONCURRENCY", "4"), 4)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set replaces the process-wide configuration. Used by tests and tools that
// build a Config by hand instead of reading the environment.
func Set(cfg *Config) {
	appConfig = cfg
}

func parseSpendScope(v string) SpendScope {
	switch SpendScope(strings.ToLower(v)) {
	case SpendScopeGlobal:
		return SpendScopeGlobal
	case SpendScopeBudget:
		return SpendScopeBudget
	}
	log.Printf("Warning: invalid SPEND_SCOPE value '%s', falling back to global\n", v)
	return SpendScopeGlobal
}

func parsePositiveInt(key, v string, fallback int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, v, fallback)
		return fallback
	}
	return n
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
