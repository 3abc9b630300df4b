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
	"fmt"
	"time"
)

var (
	globalFactory *BaseStoreFactory
	globalConfig  *Config
	globalStore   Store
)

// Get returns the global store instance, or nil if Init was never called.
func Get() Store {
	if globalFactory != nil {
		return globalFactory.GetStore()
	}
	return globalStore
}

// GetStoreFactory returns the global store factory.
func GetStoreFactory() *BaseStoreFactory {
	return globalFactory
}

// Init initializes the global store using the provided configuration. Any
// previously initialized store is closed first.
func Init(cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("store configuration cannot be empty")
	}
	if err := Close(); err != nil {
		return nil, fmt.Errorf("failed to close previous store: %w", err)
	}
	globalConfig = cfg
	globalFactory = NewStoreFactory()
	store, err := globalFactory.CreateFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	globalStore = store
	return store, nil
}

// Close closes the global store.
func Close() error {
	if globalFactory != nil {
		return globalFactory.Close()
	}
	if globalStore != nil {
		return globalStore.Close()
	}
	return nil
}

// Health pings the global store and reports its status.
func Health(ctx context.Context) *HealthStatus {
	store := Get()
	status := &HealthStatus{LastCheckTime: time.Now()}
	if globalConfig != nil {
		status.Driver = globalConfig.Driver
	}
	if store == nil {
		status.LastError = "Store not initialized"
		return status
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, time.Second*5)
	defer cancel()

	start := time.Now()
	err := store.Ping(ctxTimeout)
	status.ResponseTime = time.Since(start)
	if err != nil {
		status.LastError = err.Error()
		return status
	}
	status.Healthy = true
	status.Connected = true
	return status
}

// GetStats returns statistics from the global store.
func GetStats(ctx context.Context) (Stats, error) {
	store := Get()
	if store == nil {
		return Stats{}, fmt.Errorf("store not initialized")
	}
	return store.Stats(ctx)
}
