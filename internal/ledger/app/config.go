package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/ledger/internal/ledger/service"
	"github.com/aussiebroadwan/ledger/pkg/jwtx"
)

type Config struct {
	JWTSecret string        // Required for auth: HS256 signing secret. Missing means auth routes answer 500
	JWTTTL    time.Duration // Optional: session token lifetime (default: 7 days)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./ledger.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Currency            string        // Optional: ISO 4217 code used by summaries (default: INR)
	FrontendURLs        []string      // Optional: browser origins allowed by CORS, comma separated (default: none)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
	MaintenanceInterval time.Duration // Database maintenance interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTTTL:              getEnvDurationOrDefault("JWT_TTL", jwtx.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("LEDGER_DATABASE_FILE", "ledger.db"),
		PepperFile:          getEnvOrDefault("LEDGER_PEPPER_FILE", "pepper"),
		Currency:            strings.ToUpper(getEnvOrDefault("LEDGER_CURRENCY", service.DefaultCurrency)),
		FrontendURLs:        splitList(os.Getenv("FRONTEND_URL")),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		MaintenanceInterval: getEnvDurationOrDefault("MAINTENANCE_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// e.g. "1h", "30m", "90s"
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
