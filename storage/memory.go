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
	"sort"
	"strings"
	"sync"
)

// memoryStore holds values in a process-local map. Useful for tests and as a
// fallback driver; nothing survives a restart.
type memoryStore struct {
	prefix string
	mu     sync.RWMutex
	data   map[string]string
	hits   int64
	misses int64
	closed bool
}

// NewMemory creates an in-memory key-value store.
func NewMemory(prefix string) *memoryStore {
	return &memoryStore{
		prefix: prefix,
		data:   make(map[string]string),
	}
}

func (s *memoryStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *memoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[s.key(key)]
	if !ok {
		s.misses++
		return "", ErrKeyNotFound
	}
	s.hits++
	return v, nil
}

func (s *memoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		s.data = make(map[string]string)
	}
	s.data[s.key(key)] = value
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, s.key(key))
	return nil
}

func (s *memoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[s.key(key)]
	return ok, nil
}

func (s *memoryStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if s.prefix != "" {
			k = strings.TrimPrefix(k, s.prefix+":")
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *memoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *memoryStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Driver: DriverMemory.String(),
		Keys:   int64(len(s.data)),
		Hits:   s.hits,
		Misses: s.misses,
	}, nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.data = make(map[string]string)
	return nil
}
