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
	"strings"

	"profiletrail/types"
)

func (t *baseTrackerImpl) Apps(ctx context.Context) ([]types.App, error) {
	custom, err := t.repos().custom.Load(ctx)
	if err != nil {
		return nil, err
	}
	return append(CatalogApps(), custom...), nil
}

func (t *baseTrackerImpl) VisibleApps(ctx context.Context) ([]types.App, error) {
	apps, err := t.Apps(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := t.settings.Load(ctx)
	if err != nil {
		return nil, err
	}

	hidden := make(map[string]struct{})
	for _, setting := range settings {
		if !setting.Visible {
			hidden[setting.Value] = struct{}{}
		}
	}

	visible := make([]types.App, 0, len(apps))
	for _, app := range apps {
		if _, ok := hidden[app.Value]; ok {
			continue
		}
		visible = append(visible, app)
	}
	return visible, nil
}

func (t *baseTrackerImpl) SetAppVisible(ctx context.Context, appValue string, visible bool) error {
	app, err := t.repos().AppByValue(ctx, appValue)
	if err != nil {
		return err
	}

	_, err = t.settings.Update(ctx, func(settings []types.AppSetting) []types.AppSetting {
		for i, setting := range settings {
			if setting.Value == app.Value {
				settings[i].Visible = visible
				return settings
			}
		}
		return append(settings, types.AppSetting{Value: app.Value, Visible: visible})
	})
	return err
}

func (t *baseTrackerImpl) AppByValue(ctx context.Context, appValue string) (*types.App, error) {
	for _, app := range CatalogApps() {
		if app.Value == appValue {
			return &app, nil
		}
	}

	custom, err := t.repos().custom.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, app := range custom {
		if app.Value == appValue {
			return &app, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownApp, appValue)
}

func (t *baseTrackerImpl) RegisterApp(ctx context.Context, app types.App) error {
	if app.Value == "" || app.Name == "" {
		return fmt.Errorf("%w: value and name are required", ErrInvalidApp)
	}
	if strings.Contains(app.Value, ":") {
		return fmt.Errorf("%w: value must not contain ':'", ErrInvalidApp)
	}
	for _, builtin := range CatalogApps() {
		if builtin.Value == app.Value {
			return fmt.Errorf("%w: %q shadows a built-in app", ErrInvalidApp, app.Value)
		}
	}

	_, err := t.repos().custom.Update(ctx, func(apps []types.App) []types.App {
		for i, existing := range apps {
			if existing.Value == app.Value {
				apps[i] = app
				return apps
			}
		}
		return append(apps, app)
	})
	return err
}

func (t *baseTrackerImpl) DefaultApp(ctx context.Context) (*types.App, error) {
	value, ok, err := t.repos().defaultApp.Load(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		if app, err := t.AppByValue(ctx, value); err == nil {
			return app, nil
		}
		// Stored default no longer resolves; fall through to the first
		// visible app.
	}

	visible, err := t.VisibleApps(ctx)
	if err != nil {
		return nil, err
	}
	if len(visible) == 0 {
		return nil, fmt.Errorf("%w: no visible apps", ErrUnknownApp)
	}
	return &visible[0], nil
}

func (t *baseTrackerImpl) SetDefaultApp(ctx context.Context, appValue string) error {
	app, err := t.repos().AppByValue(ctx, appValue)
	if err != nil {
		return err
	}
	return t.defaultApp.Save(ctx, app.Value)
}

func (t *baseTrackerImpl) ProfileURL(ctx context.Context, appValue, profile string) (string, error) {
	app, err := t.repos().AppByValue(ctx, appValue)
	if err != nil {
		return "", err
	}
	return app.ProfileURL(profile), nil
}

func (t *baseTrackerImpl) Seed(ctx context.Context) error {
	exists, err := t.repos().store.Exists(ctx, appSettingsKey)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	settings := make([]types.AppSetting, 0)
	for _, app := range CatalogApps() {
		settings = append(settings, types.AppSetting{Value: app.Value, Visible: true})
	}
	return t.settings.Save(ctx, settings)
}
