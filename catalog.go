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
	"sort"
	"sync"

	"profiletrail/types"
)

var defaultCatalog = newAppRegistry()

// CatalogApp represents a launcher application entry used for catalog
// resolution. Instance should return the app record, and Priority controls
// ordering when listing apps (lower values first).
type CatalogApp interface {
	Instance() types.App
	Priority() int
}

// AppRegistry stores catalog apps and exposes them in a deterministic order.
type AppRegistry interface {
	Register(app CatalogApp)
	Apps() []CatalogApp
}

type appRegistry struct {
	apps  []CatalogApp
	mutex sync.RWMutex
}

func newAppRegistry() AppRegistry {
	return &appRegistry{
		apps: make([]CatalogApp, 0),
	}
}

func (r *appRegistry) Register(app CatalogApp) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.apps = append(r.apps, app)
}

func (r *appRegistry) Apps() []CatalogApp {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]CatalogApp, len(r.apps))
	copy(result, r.apps)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

type AppAdapter struct {
	instance types.App
	priority int
}

// NewAppAdapter wraps an app record and priority into a CatalogApp.
func NewAppAdapter(instance types.App, priority int) CatalogApp {
	return &AppAdapter{
		instance: instance,
		priority: priority,
	}
}

// Instance returns the underlying app record.
func (a *AppAdapter) Instance() types.App {
	return a.instance
}

// Priority returns the app's ordering value; lower values list earlier.
func (a *AppAdapter) Priority() int {
	return a.priority
}

// RegisterCatalogApp adds an app to the default catalog registry. Intended
// for init-time extension by embedders.
func RegisterCatalogApp(app CatalogApp) {
	defaultCatalog.Register(app)
}

// CatalogApps returns all built-in apps sorted by ascending priority.
func CatalogApps() []types.App {
	registered := defaultCatalog.Apps()
	apps := make([]types.App, len(registered))
	for i, app := range registered {
		apps[i] = app.Instance()
	}
	return apps
}

func init() {
	builtins := []types.App{
		{Value: "gmail", Name: "Gmail", URLTemplate: "https://mail.google.com/mail/?authuser={profile}"},
		{Value: "calendar", Name: "Google Calendar", URLTemplate: "https://calendar.google.com/calendar/r?authuser={profile}"},
		{Value: "drive", Name: "Google Drive", URLTemplate: "https://drive.google.com/drive/?authuser={profile}"},
		{Value: "docs", Name: "Google Docs", URLTemplate: "https://docs.google.com/document/?authuser={profile}"},
		{Value: "sheets", Name: "Google Sheets", URLTemplate: "https://docs.google.com/spreadsheets/?authuser={profile}"},
		{Value: "slides", Name: "Google Slides", URLTemplate: "https://docs.google.com/presentation/?authuser={profile}"},
		{Value: "meet", Name: "Google Meet", URLTemplate: "https://meet.google.com/?authuser={profile}"},
		{Value: "keep", Name: "Google Keep", URLTemplate: "https://keep.google.com/?authuser={profile}"},
		{Value: "contacts", Name: "Google Contacts", URLTemplate: "https://contacts.google.com/?authuser={profile}"},
	}
	for i, app := range builtins {
		RegisterCatalogApp(NewAppAdapter(app, i))
	}
}
