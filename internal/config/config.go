package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env         string
	ServiceName string

	AdminName     string
	AdminEmail    string
	AdminPassword string
	PasswordCost  int
	DefaultRole   string

	CatalogCacheTTL   time.Duration
	CertVerifyBaseURL string

	OTLPEndpoint    string
	TraceSampleRate float64

	NotifierTimeout          time.Duration
	NotifierFailureThreshold int
	NotifierCooldown         time.Duration
	JobsMaxTries             int
	WorkerPollInterval       time.Duration

	ShutdownTimeout time.Duration
}

// Load reads the environment, after merging an optional .env file from the
// working directory. Variables already set win over the file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:         getEnv("APP_ENV", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "learnhub"),

		AdminName:     getEnv("ADMIN_NAME", "System Admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@lms.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "adminpass"),
		PasswordCost:  getEnvInt("PASSWORD_COST", 10),
		DefaultRole:   getEnv("DEFAULT_ROLE", "Student"),

		CatalogCacheTTL:   getEnvDuration("CATALOG_CACHE_TTL", 30*time.Second),
		CertVerifyBaseURL: getEnv("CERT_VERIFY_BASE_URL", "lms.com"),

		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TraceSampleRate: getEnvFloat("OTEL_TRACES_SAMPLE_RATIO", 1),

		NotifierTimeout:          getEnvDuration("NOTIFIER_TIMEOUT", 3*time.Second),
		NotifierFailureThreshold: getEnvInt("NOTIFIER_FAILURE_THRESHOLD", 3),
		NotifierCooldown:         getEnvDuration("NOTIFIER_COOLDOWN", 15*time.Second),
		JobsMaxTries:             getEnvInt("JOBS_MAX_TRIES", 5),
		WorkerPollInterval:       getEnvDuration("WORKER_POLL_INTERVAL", 500*time.Millisecond),

		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("config: invalid integer, using default", "key", key, "value", v, "err", err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil {
			slog.Warn("config: invalid duration, using default", "key", key, "value", v, "err", err)
			return fallback
		}

		return d
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)

		if err != nil {
			slog.Warn("config: invalid number, using default", "key", key, "value", v, "err", err)
			return fallback
		}

		return f
	}
	return fallback
}
