package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Snapshot  SnapshotConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Broker    BrokerConfig
	Analytics AnalyticsConfig
	Logger    LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// SnapshotConfig selects and parameterizes the snapshot backend.
type SnapshotConfig struct {
	Backend  string // "file", "redis" or "postgres"
	FilePath string
	RedisKey string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BrokerConfig holds optional RabbitMQ settings. An empty URL disables
// the broker bridge entirely.
type BrokerConfig struct {
	URL   string
	Queue string
}

// AnalyticsConfig tunes the derived-state windows. The defaults are the
// demo-tuned constants; they carry no stated business justification, so
// they are configurable rather than hard-coded.
type AnalyticsConfig struct {
	RecurrenceWindowDays int
	HotspotWindowDays    int
	HotspotThreshold     int
	ClosedWindowDays     int
	TopPriorityLimit     int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "hotel-maintenance-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Snapshot: SnapshotConfig{
			Backend:  getEnv("SNAPSHOT_BACKEND", "file"),
			FilePath: getEnv("SNAPSHOT_FILE_PATH", "maintenance_tickets.json"),
			RedisKey: getEnv("SNAPSHOT_REDIS_KEY", "hotel:maintenance:tickets"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Broker: BrokerConfig{
			URL:   os.Getenv("BROKER_URL"),
			Queue: getEnv("BROKER_QUEUE", "maintenance.events"),
		},
		Analytics: AnalyticsConfig{
			RecurrenceWindowDays: getEnvAsInt("ANALYTICS_RECURRENCE_WINDOW_DAYS", 30),
			HotspotWindowDays:    getEnvAsInt("ANALYTICS_HOTSPOT_WINDOW_DAYS", 7),
			HotspotThreshold:     getEnvAsInt("ANALYTICS_HOTSPOT_THRESHOLD", 3),
			ClosedWindowDays:     getEnvAsInt("ANALYTICS_CLOSED_WINDOW_DAYS", 7),
			TopPriorityLimit:     getEnvAsInt("ANALYTICS_TOP_PRIORITY_LIMIT", 5),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Snapshot.Backend {
	case "file", "redis", "postgres":
	default:
		return nil, fmt.Errorf("invalid SNAPSHOT_BACKEND %q", cfg.Snapshot.Backend)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
