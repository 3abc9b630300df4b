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

package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
)

func newSQLiteStore(t *testing.T) *sqlStore {
	t.Helper()

	cfg := DefaultConnectionConfig()
	cfg.Path = filepath.Join(t.TempDir(), "trail.db")
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1

	store, err := NewSQL(DriverSQLite, cfg, "trail", GetLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	_, err := store.Get(ctx, "absent")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSQLStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "usageHistory", `[{"profile":"work"}]`))
	require.NoError(t, store.Set(ctx, "usageHistory", `[]`))

	val, err := store.Get(ctx, "usageHistory")
	require.NoError(t, err)
	assert.Equal(t, `[]`, val)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Keys)
}

func TestSQLStoreKeysAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	require.NoError(t, store.Set(ctx, "b", "2"))
	require.NoError(t, store.Set(ctx, "a", "1"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, store.Delete(ctx, "a"))
	ok, err := store.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEntriesTableHoldsLargeValuesOnMySQL(t *testing.T) {
	// MySQL renders untyped string columns as VARCHAR(255), which is too small
	// for a full usage-history blob. The value column must be TEXT.
	sqlDB, err := sql.Open("mysql", "user:pass@tcp(127.0.0.1:3306)/profiletrail")
	require.NoError(t, err)
	defer func() { _ = sqlDB.Close() }()

	db := bun.NewDB(sqlDB, mysqldialect.New())
	buf, err := db.NewCreateTable().
		Model((*kvEntry)(nil)).
		AppendQuery(db.Formatter(), nil)
	require.NoError(t, err)

	ddl := strings.ToLower(string(buf))
	assert.Contains(t, ddl, "`value` text")
	assert.NotContains(t, ddl, "`value` varchar")
}

func TestSQLStoreMigrationsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	// A second run over the same database must be a no-op.
	require.NoError(t, newMigrationManager(store.bunDB(), GetLogger()).RunMigrations(ctx))

	applied, err := newMigrationManager(store.bunDB(), GetLogger()).GetAppliedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "001", applied[0].Version)
}

func TestSQLStoreCloseIdempotent(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}

func TestRedisStoreAgainstServer(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	store, err := NewRedis(&RedisConfig{Addr: addr}, "trail-test", GetLogger())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set(ctx, "k", "v"))
	val, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
	require.NoError(t, store.Delete(ctx, "k"))
}
