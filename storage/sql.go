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
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"

	"profiletrail/types"
)

// kvEntry is the single table backing the SQL store.
type kvEntry struct {
	bun.BaseModel `bun:"table:kv_entries,alias:kv"`

	Key       string       `bun:"key,pk" json:"key"`
	Value     string       `bun:"value,notnull,type:text" json:"value"`
	UpdatedAt types.Millis `bun:"updated_at,notnull" json:"updated_at"`
}

type sqlStore struct {
	driver Driver
	config *ConnectionConfig
	prefix string
	logger Logger

	mu        sync.RWMutex
	db        *bun.DB
	sqlDB     *sql.DB
	connected bool
	hits      int64
	misses    int64
}

// NewSQL creates a key-value store backed by a SQL database and runs its
// migrations. Supported drivers are sqlite, mysql, and postgres.
func NewSQL(driver Driver, config *ConnectionConfig, prefix string, logger Logger) (*sqlStore, error) {
	if !driver.IsSQL() {
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}
	if config == nil {
		config = DefaultConnectionConfig()
	}
	if logger == nil {
		logger = GetLogger()
	}

	s := &sqlStore{
		driver: driver,
		config: config,
		prefix: prefix,
		logger: logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	if err := s.connect(ctx); err != nil {
		return nil, err
	}
	if err := newMigrationManager(s.db, logger).RunMigrations(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run store migrations: %w", err)
	}
	return s, nil
}

func (s *sqlStore) connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected && s.db != nil {
		return nil
	}

	if s.config.ConnectTimeout.Seconds() <= 0 {
		s.config.ConnectTimeout = 30 * time.Second
	}

	var err error
	switch s.driver {
	case DriverMySQL:
		s.sqlDB, s.db, err = s.createMySQLConnection()
	case DriverPostgres:
		s.sqlDB, s.db, err = s.createPostgreSQLConnection()
	case DriverSQLite:
		s.sqlDB, s.db, err = s.createSQLiteConnection()
	default:
		return fmt.Errorf("unsupported sql driver: %s", s.driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create store connection: %w", err)
	}

	if s.config.EnableQueryLog {
		s.db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	// Always report failed queries; PROFILETRAIL_QUERY_LOG=2 echoes all of them.
	s.db.AddQueryHook(NewQueryHook("PROFILETRAIL_QUERY_LOG"))
	if s.config.SlowQueryTime > 0 {
		s.db.AddQueryHook(NewSlowQueryHook("PROFILETRAIL_SLOW_QUERY_LOG", s.config.SlowQueryTime))
	}

	s.configureConnectionPool()

	ctxTimeout, cancel := context.WithTimeout(ctx, s.config.ConnectTimeout)
	defer cancel()
	if err := s.db.PingContext(ctxTimeout); err != nil {
		return fmt.Errorf("store connection test failed: %w", err)
	}

	s.connected = true
	if s.logger != nil {
		s.logger.Info("Store connected successfully:", "driver", s.driver.String(), "host", s.config.Host)
	}
	return nil
}

func (s *sqlStore) createMySQLConnection() (*sql.DB, *bun.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%s&readTimeout=%s&writeTimeout=%s",
		s.config.Username,
		s.config.Password,
		s.config.Host,
		s.config.Port,
		s.config.DBName,
		s.config.ConnectTimeout,
		s.config.ReadTimeout,
		s.config.WriteTimeout,
	)

	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, mysqldialect.New())
	return sqlDB, db, nil
}

func (s *sqlStore) createPostgreSQLConnection() (*sql.DB, *bun.DB, error) {
	sslMode := s.config.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&connect_timeout=%d",
		s.config.Username,
		s.config.Password,
		s.config.Host,
		s.config.Port,
		s.config.DBName,
		sslMode,
		int(s.config.ConnectTimeout.Seconds()),
	)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, pgdialect.New())
	return sqlDB, db, nil
}

func (s *sqlStore) createSQLiteConnection() (*sql.DB, *bun.DB, error) {
	dsn := s.config.Path
	if dsn == "" {
		dsn = fmt.Sprintf("%s.db", s.config.DBName)
	}

	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, nil, err
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	return sqlDB, db, nil
}

func (s *sqlStore) configureConnectionPool() {
	if s.sqlDB == nil {
		return
	}

	s.sqlDB.SetMaxIdleConns(s.config.MaxIdleConns)
	s.sqlDB.SetMaxOpenConns(s.config.MaxOpenConns)
	s.sqlDB.SetConnMaxLifetime(s.config.ConnMaxLifetime)
	s.sqlDB.SetConnMaxIdleTime(s.config.ConnMaxIdleTime)
}

func (s *sqlStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *sqlStore) Get(ctx context.Context, key string) (string, error) {
	db := s.bunDB()
	if db == nil {
		return "", fmt.Errorf("store not connected")
	}

	entry := new(kvEntry)
	err := db.NewSelect().
		Model(entry).
		Where("? = ?", bun.Ident("key"), s.key(key)).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		s.count(false)
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	s.count(true)
	return entry.Value, nil
}

func (s *sqlStore) Set(ctx context.Context, key, value string) error {
	db := s.bunDB()
	if db == nil {
		return fmt.Errorf("store not connected")
	}

	entry := &kvEntry{
		Key:       s.key(key),
		Value:     value,
		UpdatedAt: types.NowMillis(),
	}

	switch {
	case db.HasFeature(feature.InsertOnConflict):
		_, err := db.NewInsert().
			Model(entry).
			On("CONFLICT (key) DO UPDATE").
			Set("value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		return err
	case db.HasFeature(feature.InsertOnDuplicateKey):
		_, err := db.NewInsert().
			Model(entry).
			On("DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)").
			Exec(ctx)
		return err
	default:
		// Fallback: separate insert/update logic
		_, err := db.NewInsert().Model(entry).Exec(ctx)
		if err != nil {
			if is, kind := IsSqlError(err); is && kind == DuplicateKeyErr {
				_, updateErr := db.NewUpdate().Model(entry).WherePK().Exec(ctx)
				return updateErr
			}
			return err
		}
		return nil
	}
}

func (s *sqlStore) Delete(ctx context.Context, key string) error {
	db := s.bunDB()
	if db == nil {
		return fmt.Errorf("store not connected")
	}
	_, err := db.NewDelete().
		Model((*kvEntry)(nil)).
		Where("? = ?", bun.Ident("key"), s.key(key)).
		Exec(ctx)
	return err
}

func (s *sqlStore) Exists(ctx context.Context, key string) (bool, error) {
	db := s.bunDB()
	if db == nil {
		return false, fmt.Errorf("store not connected")
	}
	return db.NewSelect().
		Model((*kvEntry)(nil)).
		Where("? = ?", bun.Ident("key"), s.key(key)).
		Exists(ctx)
}

func (s *sqlStore) Keys(ctx context.Context) ([]string, error) {
	db := s.bunDB()
	if db == nil {
		return nil, fmt.Errorf("store not connected")
	}

	query := db.NewSelect().
		Model((*kvEntry)(nil)).
		Column("key").
		Order("key ASC")
	if s.prefix != "" {
		query = query.Where("? LIKE ?", bun.Ident("key"), s.prefix+":%")
	}

	var stored []string
	if err := query.Scan(ctx, &stored); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(stored))
	for _, k := range stored {
		if s.prefix != "" {
			k = strings.TrimPrefix(k, s.prefix+":")
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *sqlStore) Ping(ctx context.Context) error {
	db := s.bunDB()
	if db == nil {
		return fmt.Errorf("store not connected")
	}
	return db.PingContext(ctx)
}

func (s *sqlStore) Stats(ctx context.Context) (Stats, error) {
	db := s.bunDB()
	if db == nil {
		return Stats{}, fmt.Errorf("store not connected")
	}

	query := db.NewSelect().Model((*kvEntry)(nil))
	if s.prefix != "" {
		query = query.Where("? LIKE ?", bun.Ident("key"), s.prefix+":%")
	}
	count, err := query.Count(ctx)
	if err != nil {
		return Stats{}, err
	}

	s.mu.RLock()
	hits, misses := s.hits, s.misses
	s.mu.RUnlock()

	return Stats{
		Driver: s.driver.String(),
		Keys:   int64(count),
		Hits:   hits,
		Misses: misses,
	}, nil
}

func (s *sqlStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Close()
	s.db = nil
	s.sqlDB = nil
	s.connected = false

	if s.logger != nil {
		if err != nil {
			s.logger.Error("Failed to close store connection", "error", err)
		} else {
			s.logger.Info("Store connection closed")
		}
	}
	return err
}

func (s *sqlStore) bunDB() *bun.DB {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db
}

func (s *sqlStore) count(hit bool) {
	s.mu.Lock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
	s.mu.Unlock()
}
