// internal/config/config.go

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Cache       CacheConfig
	Google      GoogleConfig
	Reddit      RedditConfig
	OpenAI      OpenAIConfig
	Twitter     TwitterConfig
	NATS        NATSConfig
	Database    DatabaseConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// CacheConfig holds per-source TTLs for the in-process cache
type CacheConfig struct {
	GoogleTTL time.Duration
	RedditTTL time.Duration
}

// GoogleConfig holds trends provider configuration
type GoogleConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RedditConfig holds Reddit API configuration. The three credential
// values act as a feature flag: the live path is attempted only when all
// of them are present, and none is validated beyond existence.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string
	Timeout      time.Duration
}

// Configured reports whether all three credentials are set.
func (c RedditConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.UserAgent != ""
}

// OpenAIConfig holds AI summarizer configuration
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Configured reports whether an API key is present.
func (c OpenAIConfig) Configured() bool {
	return c.APIKey != ""
}

// TwitterConfig holds Twitter API configuration for the global listing
type TwitterConfig struct {
	BearerToken string
}

// Configured reports whether a bearer token is present.
func (c TwitterConfig) Configured() bool {
	return c.BearerToken != ""
}

// NATSConfig holds event bus configuration. An empty URL disables
// event publication and the live websocket feed.
type NATSConfig struct {
	URL            string
	Subject        string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// Enabled reports whether an event bus is configured.
func (c NATSConfig) Enabled() bool {
	return c.URL != ""
}

// DatabaseConfig holds the optional search-log database. An empty URL
// disables persistence entirely.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Cache: CacheConfig{
			GoogleTTL: getEnvAsDuration("CACHE_GOOGLE_TTL", 1*time.Hour),
			RedditTTL: getEnvAsDuration("CACHE_REDDIT_TTL", 30*time.Minute),
		},
		Google: GoogleConfig{
			BaseURL: getEnv("GOOGLE_TRENDS_BASE_URL", "https://trends.google.com"),
			Timeout: getEnvAsDuration("GOOGLE_TRENDS_TIMEOUT", 10*time.Second),
		},
		Reddit: RedditConfig{
			ClientID:     getEnv("REDDIT_CLIENT_ID", ""),
			ClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
			UserAgent:    getEnv("REDDIT_USER_AGENT", ""),
			BaseURL:      getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
			Timeout:      getEnvAsDuration("REDDIT_TIMEOUT", 10*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
			Timeout: getEnvAsDuration("OPENAI_TIMEOUT", 30*time.Second),
		},
		Twitter: TwitterConfig{
			BearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			Subject:        getEnv("NATS_ANALYSIS_SUBJECT", "trends.analyzed"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 5*time.Minute),
		},
	}

	return config, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
