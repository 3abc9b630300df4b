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

import "time"

// HealthStatus holds the result of a health check against the store.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	Driver        string        `json:"driver"`
	ResponseTime  time.Duration `json:"response_time"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// ConnectionConfig describes how to connect to a SQL backend and tune its pool.
type ConnectionConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	DBName          string        `json:"dbname"`
	SSLMode         string        `json:"sslmode"`
	Path            string        `json:"path"` // sqlite file, ":memory:" for tests
	MaxIdleConns    int           `json:"max_idle_conns"`
	MaxOpenConns    int           `json:"max_open_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	ConnectTimeout  time.Duration `json:"connect_timeout"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	EnableQueryLog  bool          `json:"enable_query_log"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
}

// RedisConfig describes how to connect to a Redis backend.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// CacheConfig controls the optional TTL read cache wrapped around the store.
type CacheConfig struct {
	Enabled         bool          `json:"enabled"`
	TTL             time.Duration `json:"ttl"`
	CleanupInterval time.Duration `json:"cleanup_interval"`
}

// Config aggregates backend selection, connection, and cache settings.
type Config struct {
	Driver           string           `json:"driver"` // sqlite, mysql, postgres, redis, memory
	Prefix           string           `json:"prefix"`
	ConnectionConfig ConnectionConfig `json:"connection_config"`
	RedisConfig      RedisConfig      `json:"redis_config"`
	CacheConfig      CacheConfig      `json:"cache_config"`
}

// DefaultConnectionConfig returns a connection config with sensible defaults.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: time.Minute * 30,
		ConnectTimeout:  time.Second * 10,
		ReadTimeout:     time.Second * 30,
		WriteTimeout:    time.Second * 30,
		EnableQueryLog:  false,
		SlowQueryTime:   time.Second * 2,
	}
}

// DefaultConfig returns a configuration using an embedded SQLite database.
func DefaultConfig() *Config {
	conn := DefaultConnectionConfig()
	conn.DBName = "profiletrail"
	return &Config{
		Driver:           DriverSQLite.String(),
		ConnectionConfig: *conn,
		RedisConfig:      RedisConfig{Addr: "127.0.0.1:6379"},
		CacheConfig: CacheConfig{
			Enabled:         false,
			TTL:             time.Minute * 5,
			CleanupInterval: time.Minute,
		},
	}
}
