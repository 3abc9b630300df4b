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

import (
	"context"
	"encoding/json"
	"fmt"

	"profiletrail/storage"
)

type jsonCollection[T any] struct {
	store storage.Store
	key   string
}

// NewCollection returns a Collection stored as a JSON array under key.
func NewCollection[T any](store storage.Store, key string) Collection[T] {
	return &jsonCollection[T]{store: store, key: key}
}

func (c *jsonCollection[T]) Load(ctx context.Context) ([]T, error) {
	raw, err := c.store.Get(ctx, c.key)
	if storage.IsNotFound(err) {
		return make([]T, 0), nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", c.key, err)
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

func (c *jsonCollection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = make([]T, 0)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", c.key, err)
	}
	return c.store.Set(ctx, c.key, string(raw))
}

func (c *jsonCollection[T]) Update(ctx context.Context, fn func([]T) []T) ([]T, error) {
	items, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	items = fn(items)
	if err := c.Save(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *jsonCollection[T]) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.key)
}

type jsonValue[T any] struct {
	store storage.Store
	key   string
}

// NewValue returns a Value stored as a single JSON record under key.
func NewValue[T any](store storage.Store, key string) Value[T] {
	return &jsonValue[T]{store: store, key: key}
}

func (v *jsonValue[T]) Load(ctx context.Context) (T, bool, error) {
	var zero T
	raw, err := v.store.Get(ctx, v.key)
	if storage.IsNotFound(err) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	var item T
	if err := json.Unmarshal([]byte(raw), &item); err != nil {
		return zero, false, fmt.Errorf("failed to decode %q: %w", v.key, err)
	}
	return item, true, nil
}

func (v *jsonValue[T]) Save(ctx context.Context, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", v.key, err)
	}
	return v.store.Set(ctx, v.key, string(raw))
}

func (v *jsonValue[T]) Clear(ctx context.Context) error {
	return v.store.Delete(ctx, v.key)
}

type textValue struct {
	store storage.Store
	key   string
}

// NewText returns a Text accessor for a bare string value under key.
func NewText(store storage.Store, key string) Text {
	return &textValue{store: store, key: key}
}

func (t *textValue) Load(ctx context.Context) (string, bool, error) {
	raw, err := t.store.Get(ctx, t.key)
	if storage.IsNotFound(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (t *textValue) Save(ctx context.Context, value string) error {
	return t.store.Set(ctx, t.key, value)
}

func (t *textValue) Clear(ctx context.Context) error {
	return t.store.Delete(ctx, t.key)
}
