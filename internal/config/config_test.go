package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dtgosha/est92-resort2/internal/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("full config with env expansion", func(t *testing.T) {
		t.Setenv("TEST_ADMIN_HASH", "$2a$10$fakehashfakehashfakehash")
		t.Setenv("TEST_REDIS_PASSWORD", "s3cret")

		path := writeConfig(t, `
api:
  port: 9090
storage:
  backend: redis
  key: est92_bookings
redis:
  address: localhost:6379
  password: ${TEST_REDIS_PASSWORD}
  db: 2
admins:
  - username: Denzel
    password_hash: ${TEST_ADMIN_HASH}
session:
  idle_minutes: 15
notifications:
  channel: mail
  recipient: ops@est92.example
  mail:
    base_url: https://mail.example.com
    api_key: key-123
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.API.Port)
		assert.Equal(t, "redis", cfg.Storage.Backend)
		assert.Equal(t, "s3cret", cfg.Redis.Password)
		assert.Equal(t, 2, cfg.Redis.DB)
		assert.Equal(t, 15*time.Minute, cfg.SessionIdle())
		assert.Equal(t, "mail", cfg.Notifications.Channel)

		creds := cfg.Credentials()
		require.Len(t, creds, 1)
		assert.Equal(t, "$2a$10$fakehashfakehashfakehash", creds["Denzel"])
	})

	t.Run("defaults fill empty fields", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "{}\n"))
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.API.Port)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
		assert.Equal(t, "est92_bookings", cfg.Storage.Key)
		assert.Equal(t, "data/est92.db", cfg.Storage.SQLitePath)
		assert.Equal(t, 30*time.Minute, cfg.SessionIdle())
		assert.Equal(t, 24*time.Hour, cfg.SnapshotInterval())
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		_, err := Load(writeConfig(t, "storage:\n  backend: dynamo\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dynamo")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})
}

func TestConfig_Catalog(t *testing.T) {
	t.Run("defaults without series config", func(t *testing.T) {
		var cfg Config
		cat := cfg.Catalog()
		assert.Equal(t, int64(3000), cat.PriceOf(catalog.SeriesS))
		assert.True(t, cat.HasRoom("T1"))
	})

	t.Run("series overrides replace defaults", func(t *testing.T) {
		var cfg Config
		cfg.Pricing.Series = []SeriesConfig{
			{Name: "T", UnitCents: 1500, Rooms: []string{"T1", "T2"}},
		}
		cat := cfg.Catalog()
		assert.Equal(t, int64(1500), cat.PriceOf(catalog.SeriesT))
		assert.Zero(t, cat.PriceOf(catalog.SeriesS))
		assert.Equal(t, []string{"T1", "T2"}, cat.RoomsOf(catalog.SeriesT))
	})
}
