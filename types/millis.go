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
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// Millis is a timestamp in milliseconds since the Unix epoch. It serializes
// to a plain JSON number and maps to INTEGER database columns.
type Millis int64

// NowMillis returns the current time as Millis.
func NowMillis() Millis {
	return Millis(time.Now().UnixMilli())
}

// MillisFromTime converts a time.Time into Millis.
func MillisFromTime(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

// Time converts the timestamp back into a time.Time.
func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

// Value implements driver.Valuer for Millis.
func (m Millis) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan implements sql.Scanner for Millis.
func (m *Millis) Scan(value interface{}) error {
	if value == nil {
		*m = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = Millis(v)
	case int:
		*m = Millis(v)
	case float64:
		*m = Millis(int64(v))
	case []byte:
		var n int64
		if _, err := fmt.Sscanf(string(v), "%d", &n); err != nil {
			return errors.New("millis: cannot parse byte value")
		}
		*m = Millis(n)
	default:
		return fmt.Errorf("millis: unsupported source type %T", value)
	}
	return nil
}
