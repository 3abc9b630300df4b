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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitClosesPreviousStore(t *testing.T) {
	t.Cleanup(func() { _ = Close() })
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.Driver = "memory"

	first, err := Init(cfg)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", "v"))
	assert.Same(t, first, Get())

	second, err := Init(cfg)
	require.NoError(t, err)
	assert.Same(t, second, Get())

	// The first store was closed when the second one took over; closing a
	// memory store discards its contents.
	ok, err := first.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHealthAfterInit(t *testing.T) {
	t.Cleanup(func() { _ = Close() })

	cfg := DefaultConfig()
	cfg.Driver = "memory"
	_, err := Init(cfg)
	require.NoError(t, err)

	status := Health(context.Background())
	assert.True(t, status.Healthy)
	assert.True(t, status.Connected)
	assert.Equal(t, "memory", status.Driver)
}
