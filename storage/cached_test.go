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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedMemory() (*cachedStore, *memoryStore) {
	backend := NewMemory("")
	cached := NewCached(backend, &CacheConfig{
		Enabled:         true,
		TTL:             time.Minute,
		CleanupInterval: time.Minute,
	})
	return cached, backend
}

func TestCachedStoreReadThrough(t *testing.T) {
	ctx := context.Background()
	cached, backend := newCachedMemory()

	require.NoError(t, backend.Set(ctx, "k", "v"))

	// First read warms the cache from the backend.
	val, err := cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	// Backend changes are invisible until the entry expires or is rewritten.
	require.NoError(t, backend.Set(ctx, "k", "changed"))
	val, err = cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)
}

func TestCachedStoreWriteThrough(t *testing.T) {
	ctx := context.Background()
	cached, backend := newCachedMemory()

	require.NoError(t, cached.Set(ctx, "k", "v1"))

	val, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", val)

	require.NoError(t, cached.Set(ctx, "k", "v2"))
	val, err = cached.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", val)
}

func TestCachedStoreDeleteDropsEntry(t *testing.T) {
	ctx := context.Background()
	cached, _ := newCachedMemory()

	require.NoError(t, cached.Set(ctx, "k", "v"))
	require.NoError(t, cached.Delete(ctx, "k"))

	_, err := cached.Get(ctx, "k")
	assert.True(t, IsNotFound(err))

	ok, err := cached.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedStoreMissPassesThrough(t *testing.T) {
	ctx := context.Background()
	cached, _ := newCachedMemory()

	_, err := cached.Get(ctx, "absent")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
