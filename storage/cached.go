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
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cachedStore wraps another Store with a write-through TTL read cache.
// Reads hit the cache first; writes and deletes update the backend and then
// refresh or drop the cached entry.
type cachedStore struct {
	backend Store
	cache   *gocache.Cache
	ttl     time.Duration

	mu     sync.Mutex
	hits   int64
	misses int64
}

// NewCached wraps a store with a TTL read cache.
func NewCached(backend Store, cfg *CacheConfig) *cachedStore {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Minute * 5
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &cachedStore{
		backend: backend,
		cache:   gocache.New(ttl, cleanup),
		ttl:     ttl,
	}
}

func (s *cachedStore) Get(ctx context.Context, key string) (string, error) {
	if v, ok := s.cache.Get(key); ok {
		s.count(true)
		if str, ok := v.(string); ok {
			return str, nil
		}
	}
	s.count(false)

	val, err := s.backend.Get(ctx, key)
	if err != nil {
		return "", err
	}
	s.cache.Set(key, val, s.ttl)
	return val, nil
}

func (s *cachedStore) Set(ctx context.Context, key, value string) error {
	if err := s.backend.Set(ctx, key, value); err != nil {
		return err
	}
	s.cache.Set(key, value, s.ttl)
	return nil
}

func (s *cachedStore) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, key); err != nil {
		return err
	}
	s.cache.Delete(key)
	return nil
}

func (s *cachedStore) Exists(ctx context.Context, key string) (bool, error) {
	if _, ok := s.cache.Get(key); ok {
		return true, nil
	}
	return s.backend.Exists(ctx, key)
}

func (s *cachedStore) Keys(ctx context.Context) ([]string, error) {
	return s.backend.Keys(ctx)
}

func (s *cachedStore) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *cachedStore) Stats(ctx context.Context) (Stats, error) {
	stats, err := s.backend.Stats(ctx)
	if err != nil {
		return Stats{}, err
	}
	s.mu.Lock()
	stats.Hits += s.hits
	stats.Misses += s.misses
	s.mu.Unlock()
	return stats, nil
}

func (s *cachedStore) Close() error {
	s.cache.Flush()
	return s.backend.Close()
}

func (s *cachedStore) count(hit bool) {
	s.mu.Lock()
	if hit {
		s.hits++
	} else {
		s.misses++
	}
	s.mu.Unlock()
}
