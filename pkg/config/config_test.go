package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("SERVER_PORT", "5000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.True(t, cfg.SeedOnEmpty)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/catalog.db")
	t.Setenv("SEED_ON_EMPTY", "false")
	t.Setenv("S3_PATH_STYLE", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/catalog.db", cfg.Storage.SQLitePath)
	assert.False(t, cfg.SeedOnEmpty)
	assert.True(t, cfg.Storage.S3PathStyle)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("MINIO_USE_SSL", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(24*60*60), cfg.JWTExpiry)
	assert.False(t, cfg.Storage.MinioUseSSL)
	assert.Equal(t, "us-east-1", cfg.Storage.MinioRegion)
}
