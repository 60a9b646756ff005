package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreRedis  = "redis"
	SessionStoreCookie = "cookie"
)

type Config struct {
	Port          string
	GinMode       string
	LogLevel      string
	LogFormat     string
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	SQLitePath    string
	SessionStore  string
	SessionSecret string
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// LoginRateLimitPerMinute caps POST /login and POST /register per client IP.
	// Zero disables the limiter.
	LoginRateLimitPerMinute int

	// RejectExpiredBids refuses bids on auctions whose end time has passed.
	RejectExpiredBids bool
}

// Load reads configuration from the environment. When envFile is non-empty
// and exists, its values are loaded first without overriding variables that
// are already set.
func Load(envFile string) *Config {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		GinMode:                 getEnv("GIN_MODE", "debug"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		DBDriver:                strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBHost:                  getEnv("DB_HOST", "localhost"),
		DBPort:                  getEnv("DB_PORT", "3306"),
		DBUser:                  getEnv("DB_USER", "auctionuser"),
		DBPassword:              getEnv("DB_PASSWORD", "auctionpassword"),
		DBName:                  getEnv("DB_NAME", "auction_house"),
		SQLitePath:              getEnv("SQLITE_PATH", "auction.db"),
		SessionStore:            strings.ToLower(getEnv("SESSION_STORE", SessionStoreRedis)),
		SessionSecret:           getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		RedisHost:               getEnv("REDIS_HOST", "localhost"),
		RedisPort:               getEnv("REDIS_PORT", "6379"),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		LoginRateLimitPerMinute: getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 0),
		RejectExpiredBids:       getEnvBool("REJECT_EXPIRED_BIDS", false),
	}
}

// RedisAddr returns the host:port pair used by the session store and rate limiter.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// IsProduction reports whether Gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
