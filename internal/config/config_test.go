package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Cache.GoogleTTL)
	assert.Equal(t, "https://trends.google.com", cfg.Google.BaseURL)
	assert.False(t, cfg.Reddit.Configured())
	assert.False(t, cfg.OpenAI.Configured())
	assert.False(t, cfg.NATS.Enabled())
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_GOOGLE_TTL", "15m")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.Cache.GoogleTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CorsOrigins)
}

func TestRedditConfiguredRequiresAllThree(t *testing.T) {
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Reddit.Configured())

	t.Setenv("REDDIT_USER_AGENT", "crazedo/1.0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.Reddit.Configured())
}

func TestIntegrationFlags(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("DATABASE_URL", "postgres://localhost/crazedo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.OpenAI.Configured())
	assert.True(t, cfg.NATS.Enabled())
	assert.True(t, cfg.Database.Enabled())
}
