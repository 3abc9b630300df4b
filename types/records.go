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

package types

import "strings"

// MaxHistoryEntries is the hard cap on stored usage history items. The oldest
// entries are dropped from the tail once the cap is exceeded.
const MaxHistoryEntries = 20

// ProfilePlaceholder is the token replaced with a profile name when building
// application URLs.
const ProfilePlaceholder = "{profile}"

// App describes a launchable application. Value is a stable slug used in
// composite keys and queries, Name is the display name, and URLTemplate
// contains a ProfilePlaceholder token.
type App struct {
	Value       string `json:"value"`
	Name        string `json:"name"`
	URLTemplate string `json:"urlTemplate"`
}

// ProfileURL substitutes the profile name into the app's URL template.
func (a App) ProfileURL(profile string) string {
	return strings.ReplaceAll(a.URLTemplate, ProfilePlaceholder, profile)
}

// AppSetting stores per-app user preferences, keyed by the app's value.
type AppSetting struct {
	Value   string `json:"value"`
	Visible bool   `json:"visible"`
}

// StarredProfile is a parsed starred (profile, app) pair.
type StarredProfile struct {
	Profile string `json:"profile"`
	App     string `json:"app"`
}

// UsageHistoryItem records that a profile was opened on an application at a
// point in time. At most one item exists per (profile, app) pair.
type UsageHistoryItem struct {
	Profile   string `json:"profile"`
	App       string `json:"app"`
	AppName   string `json:"appName"`
	Timestamp Millis `json:"timestamp"`
}

// SamePair reports whether the item refers to the given (profile, app) pair.
func (i UsageHistoryItem) SamePair(profile, app string) bool {
	return i.Profile == profile && i.App == app
}
