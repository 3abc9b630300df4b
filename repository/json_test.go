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

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profiletrail/storage"
	"profiletrail/types"
)

func TestCollectionLoadMissingKey(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[types.AppSetting](storage.NewMemory(""), "appSettings")

	items, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCollectionSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory("")
	coll := NewCollection[types.AppSetting](store, "appSettings")

	want := []types.AppSetting{
		{Value: "gmail", Visible: true},
		{Value: "drive", Visible: false},
	}
	require.NoError(t, coll.Save(ctx, want))

	got, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The stored blob is a JSON array in the launcher's wire format.
	raw, err := store.Get(ctx, "appSettings")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"value":"gmail","visible":true},{"value":"drive","visible":false}]`,
		raw)
}

func TestCollectionUpdate(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[string](storage.NewMemory(""), "starredProfiles")

	saved, err := coll.Update(ctx, func(keys []string) []string {
		return append(keys, "gmail:work")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gmail:work"}, saved)

	saved, err = coll.Update(ctx, func(keys []string) []string {
		return append(keys, "drive:home")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"gmail:work", "drive:home"}, saved)
}

func TestCollectionClear(t *testing.T) {
	ctx := context.Background()
	coll := NewCollection[string](storage.NewMemory(""), "starredProfiles")

	_, err := coll.Update(ctx, func(keys []string) []string { return append(keys, "x:y") })
	require.NoError(t, err)
	require.NoError(t, coll.Clear(ctx))

	items, err := coll.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCollectionDecodeError(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory("")
	require.NoError(t, store.Set(ctx, "usageHistory", "not json"))

	coll := NewCollection[types.UsageHistoryItem](store, "usageHistory")
	_, err := coll.Load(ctx)
	assert.Error(t, err)
}

func TestValueLoadSaveClear(t *testing.T) {
	ctx := context.Background()
	val := NewValue[types.App](storage.NewMemory(""), "featuredApp")

	_, ok, err := val.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := types.App{Value: "gmail", Name: "Gmail", URLTemplate: "https://mail.google.com/mail/?authuser={profile}"}
	require.NoError(t, val.Save(ctx, want))

	got, ok, err := val.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, val.Clear(ctx))
	_, ok, err = val.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTextStoresBareString(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory("")
	text := NewText(store, "defaultApp")

	_, ok, err := text.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, text.Save(ctx, "gmail"))

	// Bare string, no JSON quoting.
	raw, err := store.Get(ctx, "defaultApp")
	require.NoError(t, err)
	assert.Equal(t, "gmail", raw)

	got, ok, err := text.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "gmail", got)
}
