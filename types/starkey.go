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
	"fmt"
	"strings"
)

// StarKey builds the composite key identifying a starred (profile, app) pair.
// The app value is a slug and never contains ':'; profile names may, so the
// app goes first and everything after the first separator is the profile.
func StarKey(profile, app string) string {
	return app + ":" + profile
}

// ParseStarKey splits a composite star key back into its app and profile.
func ParseStarKey(key string) (profile, app string, err error) {
	idx := strings.Index(key, ":")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", fmt.Errorf("malformed star key: %q", key)
	}
	return key[idx+1:], key[:idx], nil
}
