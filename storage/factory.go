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
	"fmt"
	"os"
	"strconv"
	"time"
)

// BaseStoreFactory creates a configured Store and provides helpers for
// environment overrides and cache wrapping.
type BaseStoreFactory struct {
	store  Store
	logger Logger
}

// NewStoreFactory returns a new store factory using the global logger.
func NewStoreFactory() *BaseStoreFactory {
	return &BaseStoreFactory{
		logger: GetLogger(),
	}
}

// CreateFromConfig constructs a store from the given configuration, applying
// environment overrides and the optional cache decorator.
func (f *BaseStoreFactory) CreateFromConfig(cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store configuration cannot be empty")
	}

	f.overrideFromEnv(cfg)

	driver := ParseDriver(cfg.Driver)
	if !driver.IsValid() {
		return nil, fmt.Errorf("unsupported store driver: %s, supported drivers: [sqlite mysql postgres redis memory]", cfg.Driver)
	}

	var store Store
	var err error
	switch {
	case driver.IsSQL():
		store, err = NewSQL(driver, &cfg.ConnectionConfig, cfg.Prefix, f.logger)
	case driver == DriverRedis:
		store, err = NewRedis(&cfg.RedisConfig, cfg.Prefix, f.logger)
	default:
		store = NewMemory(cfg.Prefix)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheConfig.Enabled {
		store = NewCached(store, &cfg.CacheConfig)
	}

	f.store = store
	return store, nil
}

// overrideFromEnv overrides configuration values from environment variables.
func (f *BaseStoreFactory) overrideFromEnv(cfg *Config) {
	if driver := os.Getenv("PROFILETRAIL_DRIVER"); driver != "" {
		cfg.Driver = driver
	}
	if prefix := os.Getenv("PROFILETRAIL_PREFIX"); prefix != "" {
		cfg.Prefix = prefix
	}

	// SQL connection info
	if host := os.Getenv("PROFILETRAIL_DB_HOST"); host != "" {
		cfg.ConnectionConfig.Host = host
	}
	if port := os.Getenv("PROFILETRAIL_DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.ConnectionConfig.Port = p
		}
	}
	if username := os.Getenv("PROFILETRAIL_DB_USERNAME"); username != "" {
		cfg.ConnectionConfig.Username = username
	}
	if password := os.Getenv("PROFILETRAIL_DB_PASSWORD"); password != "" {
		cfg.ConnectionConfig.Password = password
	}
	if dbname := os.Getenv("PROFILETRAIL_DB_NAME"); dbname != "" {
		cfg.ConnectionConfig.DBName = dbname
	}
	if sslmode := os.Getenv("PROFILETRAIL_DB_SSLMODE"); sslmode != "" {
		cfg.ConnectionConfig.SSLMode = sslmode
	}
	if path := os.Getenv("PROFILETRAIL_DB_PATH"); path != "" {
		cfg.ConnectionConfig.Path = path
	}

	// Connection pool config
	if maxIdle := os.Getenv("PROFILETRAIL_DB_MAX_IDLE_CONNS"); maxIdle != "" {
		if val, err := strconv.Atoi(maxIdle); err == nil {
			cfg.ConnectionConfig.MaxIdleConns = val
		}
	}
	if maxOpen := os.Getenv("PROFILETRAIL_DB_MAX_OPEN_CONNS"); maxOpen != "" {
		if val, err := strconv.Atoi(maxOpen); err == nil {
			cfg.ConnectionConfig.MaxOpenConns = val
		}
	}
	if maxLifetime := os.Getenv("PROFILETRAIL_DB_CONN_MAX_LIFETIME"); maxLifetime != "" {
		if val, err := strconv.Atoi(maxLifetime); err == nil {
			cfg.ConnectionConfig.ConnMaxLifetime = time.Duration(val) * time.Second
		}
	}

	// Redis connection info
	if addr := os.Getenv("PROFILETRAIL_REDIS_ADDR"); addr != "" {
		cfg.RedisConfig.Addr = addr
	}
	if password := os.Getenv("PROFILETRAIL_REDIS_PASSWORD"); password != "" {
		cfg.RedisConfig.Password = password
	}
	if db := os.Getenv("PROFILETRAIL_REDIS_DB"); db != "" {
		if val, err := strconv.Atoi(db); err == nil {
			cfg.RedisConfig.DB = val
		}
	}

	// Logging config
	if enableQueryLog := os.Getenv("PROFILETRAIL_DB_ENABLE_QUERY_LOG"); enableQueryLog != "" {
		cfg.ConnectionConfig.EnableQueryLog = enableQueryLog == "true"
	}
}

// GetStore returns the store created by the factory, or nil.
func (f *BaseStoreFactory) GetStore() Store {
	return f.store
}

// SetLogger sets the logger used for stores created by the factory.
func (f *BaseStoreFactory) SetLogger(logger Logger) {
	f.logger = logger
}

// Close closes the store managed by the factory.
func (f *BaseStoreFactory) Close() error {
	if f.store == nil {
		return nil
	}
	return f.store.Close()
}
