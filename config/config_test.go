/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profiletrail/storage"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "profiletrail.db", cfg.Storage.SQLite.Path)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
log:
  level: debug
  format: json
storage:
  driver: postgres
  prefix: trail
  postgres:
    host: db.internal
    port: 5432
    username: trail
    password: secret
    dbname: profiletrail
    sslmode: require
cache:
  enabled: true
  ttl: 30s
  cleanup_interval: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "trail", cfg.Storage.Prefix)
	assert.Equal(t, "db.internal", cfg.Storage.Postgres.Host)
	assert.Equal(t, 5432, cfg.Storage.Postgres.Port)
	assert.Equal(t, "require", cfg.Storage.Postgres.SSLMode)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "30s", cfg.Cache.TTL)
	assert.Equal(t, "10s", cfg.Cache.CleanupInterval)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "cache:\n  ttl: soon\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFileValues(t *testing.T) {
	t.Setenv("PROFILETRAIL_LOG_LEVEL", "warn")
	t.Setenv("PROFILETRAIL_LOG_FORMAT", "json")
	t.Setenv("PROFILETRAIL_DRIVER", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.Storage.Driver)
}

func TestStoreConfigMapsPostgres(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "postgres"
	cfg.Storage.Prefix = "trail"
	cfg.Storage.Postgres.Host = "db.internal"
	cfg.Storage.Postgres.Port = 5432
	cfg.Storage.Postgres.Username = "trail"
	cfg.Storage.Postgres.Password = "secret"
	cfg.Storage.Postgres.DBName = "profiletrail"
	cfg.Storage.Postgres.SSLMode = "require"

	sc := cfg.StoreConfig()
	assert.Equal(t, storage.DriverPostgres, storage.ParseDriver(sc.Driver))
	assert.Equal(t, "trail", sc.Prefix)
	assert.Equal(t, "db.internal", sc.ConnectionConfig.Host)
	assert.Equal(t, 5432, sc.ConnectionConfig.Port)
	assert.Equal(t, "require", sc.ConnectionConfig.SSLMode)
}

func TestStoreConfigMapsSQLiteAndCache(t *testing.T) {
	cfg := Default()
	cfg.Storage.SQLite.Path = "/var/lib/profiletrail/trail.db"
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = "45s"

	sc := cfg.StoreConfig()
	assert.Equal(t, storage.DriverSQLite, storage.ParseDriver(sc.Driver))
	assert.Equal(t, "/var/lib/profiletrail/trail.db", sc.ConnectionConfig.Path)
	assert.True(t, sc.CacheConfig.Enabled)
	assert.Equal(t, 45*time.Second, sc.CacheConfig.TTL)
	// Zero durations keep the defaults.
	assert.Equal(t, time.Minute, sc.CacheConfig.CleanupInterval)
}

func TestStoreConfigMapsRedis(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "redis"
	cfg.Storage.Redis.Addr = "cache.internal:6379"
	cfg.Storage.Redis.Password = "secret"
	cfg.Storage.Redis.DB = 3

	sc := cfg.StoreConfig()
	assert.Equal(t, storage.DriverRedis, storage.ParseDriver(sc.Driver))
	assert.Equal(t, "cache.internal:6379", sc.RedisConfig.Addr)
	assert.Equal(t, 3, sc.RedisConfig.DB)
}
