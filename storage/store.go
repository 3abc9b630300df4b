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

package storage

import "context"

// Store is a persistent string key-value store holding JSON-serialized blobs.
type Store interface {
	// Get returns the value for key, or ErrKeyNotFound if absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// Keys returns all stored keys.
	Keys(ctx context.Context) ([]string, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Stats returns backend statistics.
	Stats(ctx context.Context) (Stats, error)

	// Close releases the backend. Close is idempotent.
	Close() error
}

// Stats contains store statistics.
type Stats struct {
	Driver     string `json:"driver"`
	Keys       int64  `json:"keys"`
	UsedMemory string `json:"used_memory,omitempty"`
	Hits       int64  `json:"hits"`
	Misses     int64  `json:"misses"`
}

// ErrKeyNotFound is returned by Get for absent keys.
var ErrKeyNotFound = errKeyNotFound{}

type errKeyNotFound struct{}

func (e errKeyNotFound) Error() string { return "storage: key not found" }

// IsNotFound reports whether the error means the key does not exist.
func IsNotFound(err error) bool {
	_, ok := err.(errKeyNotFound)
	return ok
}
