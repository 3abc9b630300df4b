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

// HistoryQuery narrows a usage history lookup. An empty App matches every
// application; a Limit of zero or less returns all matches.
type HistoryQuery struct {
	app   string
	limit int
}

func (q *HistoryQuery) GetApp() string {
	return q.app
}

func (q *HistoryQuery) GetLimit() int {
	return q.limit
}

// HasLimit reports whether the query truncates its result.
func (q *HistoryQuery) HasLimit() bool {
	return q.limit > 0
}

// MatchesApp reports whether an item's app value passes the filter.
func (q *HistoryQuery) MatchesApp(app string) bool {
	return q.app == "" || q.app == app
}

// NewHistoryQuery constructs a query filtered by app with a result limit.
// Negative limits are clamped to zero, meaning unlimited.
func NewHistoryQuery(app string, limit int) *HistoryQuery {
	if limit < 0 {
		limit = 0
	}
	return &HistoryQuery{app, limit}
}

// NewHistoryQueryWithApp constructs a query filtered by app only.
func NewHistoryQueryWithApp(app string) *HistoryQuery {
	return NewHistoryQuery(app, 0)
}

// NewHistoryQueryWithLimit constructs a query with a result limit only.
func NewHistoryQueryWithLimit(limit int) *HistoryQuery {
	return NewHistoryQuery("", limit)
}

// NewDefaultHistoryQuery constructs a query returning everything.
func NewDefaultHistoryQuery() *HistoryQuery {
	return NewHistoryQuery("", 0)
}
