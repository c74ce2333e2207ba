package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://onboarding.example.org/")
	t.Setenv("PERSISTENCE_DRIVER", "Postgres")
	t.Setenv("INTAKE_SESSION_TTL_MINUTES", "45")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("REVIEWER_EMAIL_AP", "ap@example.org")
	t.Setenv("GO_ENV", "development")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "onboarding-test")

	cfg := Load()

	assert.Equal(t, "https://onboarding.example.org", cfg.App.BaseURL)
	assert.Equal(t, PersistencePostgres, cfg.Storage.Driver)
	assert.Equal(t, 45*time.Minute, cfg.App.IntakeSessionTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "ap@example.org", cfg.Reviewers.AP)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "onboarding-test", cfg.Tracing.ServiceName)
}

func TestLoad_TracingDefaults(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "maybe")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := Load()

	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "", cfg.Tracing.Endpoint, "an explicitly empty endpoint is kept")
	assert.Equal(t, "supplier-onboarding-backend", cfg.Tracing.ServiceName)
}
