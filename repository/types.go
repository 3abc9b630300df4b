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

import "context"

// Collection defines operations over a JSON-serialized list stored under a
// single key.
type Collection[T any] interface {
	// Load returns the stored list. A missing key yields an empty slice.
	Load(ctx context.Context) ([]T, error)

	// Save replaces the stored list.
	Save(ctx context.Context, items []T) error

	// Update applies a read-modify-write cycle and returns the saved list.
	Update(ctx context.Context, fn func([]T) []T) ([]T, error)

	// Clear removes the stored list.
	Clear(ctx context.Context) error
}

// Value defines operations over a single JSON-serialized record.
type Value[T any] interface {
	// Load returns the stored record and whether it was present.
	Load(ctx context.Context) (T, bool, error)

	// Save replaces the stored record.
	Save(ctx context.Context, item T) error

	// Clear removes the stored record.
	Clear(ctx context.Context) error
}

// Text defines operations over a raw string value stored without JSON
// wrapping, matching blobs written as bare strings.
type Text interface {
	// Load returns the stored string and whether it was present.
	Load(ctx context.Context) (string, bool, error)

	// Save replaces the stored string.
	Save(ctx context.Context, value string) error

	// Clear removes the stored string.
	Clear(ctx context.Context) error
}
