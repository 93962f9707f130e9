package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "ADMIN_EMAIL", "PASSWORD_COST", "CATALOG_CACHE_TTL", "OTEL_EXPORTER_OTLP_ENDPOINT", "DEFAULT_ROLE", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "admin@lms.com", cfg.AdminEmail)
	assert.Equal(t, "adminpass", cfg.AdminPassword)
	assert.Equal(t, 10, cfg.PasswordCost)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, "Student", cfg.DefaultRole)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PASSWORD_COST", "4")
	t.Setenv("CATALOG_CACHE_TTL", "2m")
	t.Setenv("JOBS_MAX_TRIES", "not-a-number")
	t.Setenv("OTEL_TRACES_SAMPLE_RATIO", "0.1")

	cfg := Load()

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 4, cfg.PasswordCost)
	assert.Equal(t, 2*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 5, cfg.JobsMaxTries, "invalid values fall back to the default")
	assert.InDelta(t, 0.1, cfg.TraceSampleRate, 1e-9)
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(time.Minute)
	defer cancel()

	deadline, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}
