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

// Package config loads the YAML configuration file and maps it onto the
// storage and logging settings. Environment variables override file values.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"profiletrail/storage"
	"profiletrail/utils"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Cache   CacheConfig   `yaml:"cache"`
}

// LogConfig selects the console log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text | json
}

// StorageConfig selects and configures the store backend.
type StorageConfig struct {
	Driver   string         `yaml:"driver"` // sqlite, mysql, postgres, redis, memory
	Prefix   string         `yaml:"prefix"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	MySQL    SQLConfig      `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type SQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type PostgresConfig struct {
	SQLConfig `yaml:",inline"`
	SSLMode   string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// CacheConfig controls the TTL read cache wrapped around the store. Durations
// are strings in time.ParseDuration form, e.g. "5m" or "30s".
type CacheConfig struct {
	Enabled         bool   `yaml:"enabled"`
	TTL             string `yaml:"ttl"`
	CleanupInterval string `yaml:"cleanup_interval"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Storage: StorageConfig{
			Driver: "sqlite",
			SQLite: SQLiteConfig{Path: "profiletrail.db"},
			Redis:  RedisConfig{Addr: "127.0.0.1:6379"},
		},
		Cache: CacheConfig{
			Enabled:         false,
			TTL:             "5m",
			CleanupInterval: "1m",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path or a
// missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyEnv()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
	}
	if c.Cache.CleanupInterval != "" {
		if _, err := time.ParseDuration(c.Cache.CleanupInterval); err != nil {
			return fmt.Errorf("cache.cleanup_interval: %w", err)
		}
	}
	return nil
}

// applyEnv overrides file values from environment variables. The store
// factory applies its own PROFILETRAIL_DB_* overrides separately.
func (c *Config) applyEnv() {
	if level := os.Getenv("PROFILETRAIL_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if format := os.Getenv("PROFILETRAIL_LOG_FORMAT"); format != "" {
		c.Log.Format = format
	}
	if driver := os.Getenv("PROFILETRAIL_DRIVER"); driver != "" {
		c.Storage.Driver = driver
	}
}

// ConfigureLogging applies the log section to the logger registry.
func (c *Config) ConfigureLogging() {
	utils.ConfigureConsoleLogFormat(c.Log.Format)
	utils.ConfigureLogLevel(c.Log.Level)
}

// StoreConfig maps the file configuration onto the storage package's config.
func (c *Config) StoreConfig() *storage.Config {
	cfg := storage.DefaultConfig()
	cfg.Driver = c.Storage.Driver
	cfg.Prefix = c.Storage.Prefix

	switch storage.ParseDriver(c.Storage.Driver) {
	case storage.DriverMySQL:
		cfg.ConnectionConfig.Host = c.Storage.MySQL.Host
		cfg.ConnectionConfig.Port = c.Storage.MySQL.Port
		cfg.ConnectionConfig.Username = c.Storage.MySQL.Username
		cfg.ConnectionConfig.Password = c.Storage.MySQL.Password
		cfg.ConnectionConfig.DBName = c.Storage.MySQL.DBName
	case storage.DriverPostgres:
		cfg.ConnectionConfig.Host = c.Storage.Postgres.Host
		cfg.ConnectionConfig.Port = c.Storage.Postgres.Port
		cfg.ConnectionConfig.Username = c.Storage.Postgres.Username
		cfg.ConnectionConfig.Password = c.Storage.Postgres.Password
		cfg.ConnectionConfig.DBName = c.Storage.Postgres.DBName
		cfg.ConnectionConfig.SSLMode = c.Storage.Postgres.SSLMode
	case storage.DriverSQLite:
		cfg.ConnectionConfig.Path = c.Storage.SQLite.Path
	}

	cfg.RedisConfig.Addr = c.Storage.Redis.Addr
	cfg.RedisConfig.Password = c.Storage.Redis.Password
	cfg.RedisConfig.DB = c.Storage.Redis.DB

	cfg.CacheConfig.Enabled = c.Cache.Enabled
	if ttl, err := time.ParseDuration(c.Cache.TTL); err == nil && ttl > 0 {
		cfg.CacheConfig.TTL = ttl
	}
	if interval, err := time.ParseDuration(c.Cache.CleanupInterval); err == nil && interval > 0 {
		cfg.CacheConfig.CleanupInterval = interval
	}
	return cfg
}
