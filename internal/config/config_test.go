// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 90*24*time.Hour, cfg.CacheTTL)
	assert.False(t, cfg.EpisodeNumbersEnabled)
	assert.Positive(t, cfg.Workers)
	assert.NotEmpty(t, cfg.OutputDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("XMLTV_REDIS_ADDR", "redis.internal:6380")
	t.Setenv("XMLTV_TMDB_API_KEY", "secret")
	t.Setenv("XMLTV_WORKERS", "3")
	t.Setenv("XMLTV_CACHE_TTL", "24h")
	t.Setenv("XMLTV_EPISODE_NUMBERS", "true")

	cfg := Load()
	assert.Equal(t, "redis.internal:6380", cfg.RedisAddr)
	assert.Equal(t, "secret", cfg.TMDBAPIKey)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.True(t, cfg.EpisodeNumbersEnabled)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("XMLTV_WORKERS", "many")
	t.Setenv("XMLTV_CACHE_TTL", "ninety days")

	cfg := Load()
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, 90*24*time.Hour, cfg.CacheTTL)
}

func TestValidateRequiresKeyWhenTMDBRequired(t *testing.T) {
	cfg := AppConfig{RequireTMDB: true, OutputDir: "/tmp/out"}
	require.Error(t, cfg.Validate())

	cfg.TMDBAPIKey = "secret"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsEmptyOutputDir(t *testing.T) {
	cfg := AppConfig{}
	assert.Error(t, cfg.Validate())
}
