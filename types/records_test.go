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

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarKeyRoundTrip(t *testing.T) {
	key := StarKey("work", "gmail")
	assert.Equal(t, "gmail:work", key)

	profile, app, err := ParseStarKey(key)
	require.NoError(t, err)
	assert.Equal(t, "work", profile)
	assert.Equal(t, "gmail", app)
}

func TestStarKeyProfileWithColon(t *testing.T) {
	// Profile names may contain the separator; the app slug never does.
	key := StarKey("team:oncall", "calendar")

	profile, app, err := ParseStarKey(key)
	require.NoError(t, err)
	assert.Equal(t, "team:oncall", profile)
	assert.Equal(t, "calendar", app)
}

func TestParseStarKeyMalformed(t *testing.T) {
	for _, key := range []string{"", "gmail", ":work", "gmail:"} {
		_, _, err := ParseStarKey(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestMillisConversions(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	m := MillisFromTime(ts)
	assert.Equal(t, ts.UnixMilli(), int64(m))
	assert.True(t, m.Time().Equal(ts))
}

func TestMillisJSONIsPlainNumber(t *testing.T) {
	item := UsageHistoryItem{
		Profile:   "work",
		App:       "gmail",
		AppName:   "Gmail",
		Timestamp: Millis(1748780000000),
	}
	raw, err := json.Marshal(item)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"profile":"work","app":"gmail","appName":"Gmail","timestamp":1748780000000}`,
		string(raw))

	var decoded UsageHistoryItem
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, item, decoded)
}

func TestMillisScan(t *testing.T) {
	var m Millis
	require.NoError(t, m.Scan(int64(42)))
	assert.Equal(t, Millis(42), m)

	require.NoError(t, m.Scan([]byte("1700000000000")))
	assert.Equal(t, Millis(1700000000000), m)

	require.NoError(t, m.Scan(nil))
	assert.Equal(t, Millis(0), m)

	assert.Error(t, m.Scan("not-a-number-type"))
}

func TestAppProfileURL(t *testing.T) {
	app := App{
		Value:       "gmail",
		Name:        "Gmail",
		URLTemplate: "https://mail.google.com/mail/?authuser={profile}",
	}
	assert.Equal(t,
		"https://mail.google.com/mail/?authuser=work@example.com",
		app.ProfileURL("work@example.com"))
}

func TestHistoryQueryLimits(t *testing.T) {
	// Negative limits are clamped when the query is built; the accessors
	// never modify it.
	q := NewHistoryQueryWithLimit(-3)
	assert.Equal(t, 0, q.GetLimit())
	assert.Equal(t, 0, q.GetLimit())
	assert.False(t, q.HasLimit())
	assert.Equal(t, *NewHistoryQueryWithLimit(0), *q)

	q = NewHistoryQuery("gmail", 5)
	assert.True(t, q.HasLimit())
	assert.True(t, q.MatchesApp("gmail"))
	assert.False(t, q.MatchesApp("drive"))

	q = NewDefaultHistoryQuery()
	assert.True(t, q.MatchesApp("anything"))
}
