package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "test")

	cfg := Load()

	assert.Equal(t, "8000", cfg.App.Port)
	assert.Equal(t, 3, cfg.Generation.MaxWorkers)
	assert.Equal(t, "product", cfg.Generation.AllocationStrategy)
	assert.Equal(t, 0.0, cfg.Ai.Temperature)
	assert.Equal(t, 10000, cfg.Ai.MaxTokens)
	assert.Equal(t, 30*time.Minute, cfg.Summary.CacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GENERATION_MAX_WORKERS", "5")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("ARTIFACT_REDIS_TTL", "24h")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, 5, cfg.Generation.MaxWorkers)
	assert.Equal(t, 0.2, cfg.Ai.Temperature)
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Artifact.RedisTTL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.IsProduction())
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("GENERATION_MAX_WORKERS", "many")
	t.Setenv("SUMMARY_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 3, cfg.Generation.MaxWorkers)
	assert.Equal(t, 30*time.Minute, cfg.Summary.CacheTTL)
}
