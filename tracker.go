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

package profiletrail

import (
	"context"
	"sync"

	"profiletrail/repository"
	"profiletrail/storage"
	"profiletrail/types"
)

// Store keys holding the tracker's JSON blobs.
const (
	historyKey     = "usageHistory"
	starsKey       = "starredProfiles"
	appSettingsKey = "appSettings"
	customAppsKey  = "customApps"
	defaultAppKey  = "defaultApp"
)

type Tracker interface {
	// RecordUsage records that a profile was opened on an application.
	RecordUsage(ctx context.Context, profile, appValue string) error

	// History returns the full usage history, most recent first.
	History(ctx context.Context) ([]types.UsageHistoryItem, error)

	// Search returns history items matching the query, most recent first.
	Search(ctx context.Context, query *types.HistoryQuery) ([]types.UsageHistoryItem, error)

	// Recent returns the most recently used items, up to limit.
	Recent(ctx context.Context, limit int) ([]types.UsageHistoryItem, error)

	// RecentForApp returns the most recent items for one application.
	RecentForApp(ctx context.Context, appValue string, limit int) ([]types.UsageHistoryItem, error)

	// KnownProfiles returns distinct profiles from history, most recent first.
	KnownProfiles(ctx context.Context) ([]string, error)

	// ClearHistory removes all usage history.
	ClearHistory(ctx context.Context) error

	// Star marks a (profile, app) pair as a favorite.
	Star(ctx context.Context, profile, appValue string) error

	// Unstar removes a favorite.
	Unstar(ctx context.Context, profile, appValue string) error

	// ToggleStar flips a favorite and returns the new state.
	ToggleStar(ctx context.Context, profile, appValue string) (bool, error)

	// IsStarred reports whether the pair is a favorite.
	IsStarred(ctx context.Context, profile, appValue string) (bool, error)

	// Starred returns all favorites whose app is still known.
	Starred(ctx context.Context) ([]types.StarredProfile, error)

	// StarredForApp returns favorite profiles on one application.
	StarredForApp(ctx context.Context, appValue string) ([]types.StarredProfile, error)

	// Apps returns the catalog merged with stored visibility settings.
	Apps(ctx context.Context) ([]types.App, error)

	// VisibleApps returns only apps the user has not hidden.
	VisibleApps(ctx context.Context) ([]types.App, error)

	// SetAppVisible shows or hides an application.
	SetAppVisible(ctx context.Context, appValue string, visible bool) error

	// AppByValue resolves an app value against built-in and custom apps.
	AppByValue(ctx context.Context, appValue string) (*types.App, error)

	// RegisterApp persists a custom application.
	RegisterApp(ctx context.Context, app types.App) error

	// DefaultApp returns the configured default application, falling back to
	// the first visible app when unset.
	DefaultApp(ctx context.Context) (*types.App, error)

	// SetDefaultApp stores the default application.
	SetDefaultApp(ctx context.Context, appValue string) error

	// ProfileURL builds the launch URL for a profile on an application.
	ProfileURL(ctx context.Context, appValue, profile string) (string, error)

	// Seed materializes default app settings into the store on first use.
	Seed(ctx context.Context) error
}

type baseTrackerImpl struct {
	store storage.Store
	once  sync.Once

	history    repository.Collection[types.UsageHistoryItem]
	stars      repository.Collection[string]
	settings   repository.Collection[types.AppSetting]
	custom     repository.Collection[types.App]
	defaultApp repository.Text
}

// NewTracker returns a Tracker backed by the global store, bound lazily on
// first use.
func NewTracker() Tracker {
	return &baseTrackerImpl{}
}

// NewTrackerWithStore returns a Tracker bound to an explicit store. Used for
// dependency injection and tests.
func NewTrackerWithStore(store storage.Store) Tracker {
	return &baseTrackerImpl{store: store}
}

func (t *baseTrackerImpl) repos() *baseTrackerImpl {
	t.once.Do(func() {
		if t.store == nil {
			t.store = storage.Get()
		}
		t.history = repository.NewCollection[types.UsageHistoryItem](t.store, historyKey)
		t.stars = repository.NewCollection[string](t.store, starsKey)
		t.settings = repository.NewCollection[types.AppSetting](t.store, appSettingsKey)
		t.custom = repository.NewCollection[types.App](t.store, customAppsKey)
		t.defaultApp = repository.NewText(t.store, defaultAppKey)
	})
	return t
}
