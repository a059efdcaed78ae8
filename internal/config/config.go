package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// Config holds the runtime configuration of the API server.  Each field
// corresponds to an environment variable; optional ones carry defaults.
type Config struct {
	Env            string // APP_ENV (dev, test, prod)
	Port           string // APP_PORT
	LogLevel       string // LOG_LEVEL (debug, info, warn, error, off)
	DBUser         string // DB_USER
	DBPass         string // DB_PASS, may be empty
	DBHost         string // DB_HOST
	DBPort         string // DB_PORT
	DBName         string // DB_NAME
	DBMigrate      bool   // DB_MIGRATE applies the embedded schema at startup
	JWTSecret      string // JWT_SECRET
	AccessTTLMin   int    // ACCESS_TOKEN_TTL_MIN
	RefreshTTLDays int    // REFRESH_TOKEN_TTL_DAYS
	BcryptCost     int    // BCRYPT_COST
	RabbitMQURL    string // RABBITMQ_URL; empty disables lifecycle events
}

// Load reads an optional .env file and then the environment.  Variables
// already set in the environment win over the file.  Missing required
// variables stop the process.
func Load() Config {
	if err := godotenv.Load(envFile()); err != nil && !os.IsNotExist(err) {
		log.Warnf("config: reading %s: %v", envFile(), err)
	}
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		LogLevel:       envStr("LOG_LEVEL", "info"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMigrate:      envBool("DB_MIGRATE", false),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
	}
}

// ParseLogLevel maps LOG_LEVEL to a gommon level; unknown values mean INFO.
func ParseLogLevel(s string) log.Lvl {
	switch s {
	case "debug", "DEBUG":
		return log.DEBUG
	case "warn", "WARN":
		return log.WARN
	case "error", "ERROR":
		return log.ERROR
	case "off", "OFF":
		return log.OFF
	}
	return log.INFO
}

func envFile() string { return envStr("ENV_FILE", ".env") }

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
