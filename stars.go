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

	"profiletrail/types"
)

func (t *baseTrackerImpl) Star(ctx context.Context, profile, appValue string) error {
	// Reject keys ParseStarKey could not read back.
	if profile == "" {
		return fmt.Errorf("%w: profile is required", ErrInvalidProfile)
	}
	app, err := t.repos().AppByValue(ctx, appValue)
	if err != nil {
		return err
	}
	key := types.StarKey(profile, app.Value)

	_, err = t.stars.Update(ctx, func(keys []string) []string {
		for _, existing := range keys {
			if existing == key {
				return keys
			}
		}
		return append(keys, key)
	})
	return err
}

func (t *baseTrackerImpl) Unstar(ctx context.Context, profile, appValue string) error {
	key := types.StarKey(profile, appValue)

	_, err := t.repos().stars.Update(ctx, func(keys []string) []string {
		kept := make([]string, 0, len(keys))
		for _, existing := range keys {
			if existing != key {
				kept = append(kept, existing)
			}
		}
		return kept
	})
	return err
}

func (t *baseTrackerImpl) ToggleStar(ctx context.Context, profile, appValue string) (bool, error) {
	starred, err := t.IsStarred(ctx, profile, appValue)
	if err != nil {
		return false, err
	}
	if starred {
		return false, t.Unstar(ctx, profile, appValue)
	}
	return true, t.Star(ctx, profile, appValue)
}

func (t *baseTrackerImpl) IsStarred(ctx context.Context, profile, appValue string) (bool, error) {
	keys, err := t.repos().stars.Load(ctx)
	if err != nil {
		return false, err
	}
	key := types.StarKey(profile, appValue)
	for _, existing := range keys {
		if existing == key {
			return true, nil
		}
	}
	return false, nil
}

func (t *baseTrackerImpl) Starred(ctx context.Context) ([]types.StarredProfile, error) {
	keys, err := t.repos().stars.Load(ctx)
	if err != nil {
		return nil, err
	}

	starred := make([]types.StarredProfile, 0, len(keys))
	for _, key := range keys {
		profile, app, err := types.ParseStarKey(key)
		if err != nil {
			continue
		}
		// Hide stars whose app was removed from the catalog.
		if _, err := t.AppByValue(ctx, app); err != nil {
			continue
		}
		starred = append(starred, types.StarredProfile{Profile: profile, App: app})
	}
	return starred, nil
}

func (t *baseTrackerImpl) StarredForApp(ctx context.Context, appValue string) ([]types.StarredProfile, error) {
	all, err := t.Starred(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]types.StarredProfile, 0, len(all))
	for _, star := range all {
		if star.App == appValue {
			matched = append(matched, star)
		}
	}
	return matched, nil
}
