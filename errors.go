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

import "errors"

// ErrUnknownApp is returned when an app value resolves to neither a built-in
// catalog app nor a registered custom app.
var ErrUnknownApp = errors.New("unknown app")

// ErrInvalidApp is returned when registering an app whose fields are unusable.
var ErrInvalidApp = errors.New("invalid app definition")

// ErrInvalidProfile is returned when an operation requires a profile name and
// none was given.
var ErrInvalidProfile = errors.New("invalid profile")
