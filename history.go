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
	"fmt"
	"sort"

	"profiletrail/types"
)

func (t *baseTrackerImpl) RecordUsage(ctx context.Context, profile, appValue string) error {
	if profile == "" {
		return fmt.Errorf("%w: profile is required", ErrInvalidProfile)
	}
	app, err := t.repos().AppByValue(ctx, appValue)
	if err != nil {
		return err
	}

	item := types.UsageHistoryItem{
		Profile:   profile,
		App:       app.Value,
		AppName:   app.Name,
		Timestamp: types.NowMillis(),
	}

	_, err = t.history.Update(ctx, func(items []types.UsageHistoryItem) []types.UsageHistoryItem {
		// Drop any earlier entry for the same pair before prepending.
		kept := make([]types.UsageHistoryItem, 0, len(items)+1)
		kept = append(kept, item)
		for _, existing := range items {
			if existing.SamePair(profile, app.Value) {
				continue
			}
			kept = append(kept, existing)
		}
		if len(kept) > types.MaxHistoryEntries {
			kept = kept[:types.MaxHistoryEntries]
		}
		return kept
	})
	return err
}

func (t *baseTrackerImpl) History(ctx context.Context) ([]types.UsageHistoryItem, error) {
	return t.Search(ctx, types.NewDefaultHistoryQuery())
}

func (t *baseTrackerImpl) Search(ctx context.Context, query *types.HistoryQuery) ([]types.UsageHistoryItem, error) {
	if query == nil {
		query = types.NewDefaultHistoryQuery()
	}

	items, err := t.repos().history.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]types.UsageHistoryItem, 0, len(items))
	for _, item := range items {
		if query.MatchesApp(item.App) {
			matched = append(matched, item)
		}
	}

	// Stable so equal timestamps keep insertion order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp > matched[j].Timestamp
	})

	if query.HasLimit() && len(matched) > query.GetLimit() {
		matched = matched[:query.GetLimit()]
	}
	return matched, nil
}

func (t *baseTrackerImpl) Recent(ctx context.Context, limit int) ([]types.UsageHistoryItem, error) {
	return t.Search(ctx, types.NewHistoryQueryWithLimit(limit))
}

func (t *baseTrackerImpl) RecentForApp(ctx context.Context, appValue string, limit int) ([]types.UsageHistoryItem, error) {
	return t.Search(ctx, types.NewHistoryQuery(appValue, limit))
}

func (t *baseTrackerImpl) KnownProfiles(ctx context.Context) ([]string, error) {
	items, err := t.History(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(items))
	profiles := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Profile]; ok {
			continue
		}
		seen[item.Profile] = struct{}{}
		profiles = append(profiles, item.Profile)
	}
	return profiles, nil
}

func (t *baseTrackerImpl) ClearHistory(ctx context.Context) error {
	return t.repos().history.Clear(ctx)
}
