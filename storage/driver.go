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

import (
	"strings"

	"profiletrail/types"
)

// Driver selects the storage backend.
type Driver int

const (
	DriverSQLite Driver = iota
	DriverMySQL
	DriverPostgres
	DriverRedis
	DriverMemory
)

var _ types.BaseEnum = DriverSQLite

var driverNames = map[Driver]string{
	DriverSQLite:   "sqlite",
	DriverMySQL:    "mysql",
	DriverPostgres: "postgres",
	DriverRedis:    "redis",
	DriverMemory:   "memory",
}

var driverDescs = map[Driver]string{
	DriverSQLite:   "embedded SQLite database (via sqliteshim)",
	DriverMySQL:    "MySQL database",
	DriverPostgres: "PostgreSQL database",
	DriverRedis:    "Redis server",
	DriverMemory:   "in-process map, not persistent",
}

func (d Driver) IsValid() bool {
	_, ok := driverNames[d]
	return ok
}

func (d Driver) Number() int {
	if !d.IsValid() {
		return types.IllegalValue
	}
	return int(d)
}

func (d Driver) String() string {
	if name, ok := driverNames[d]; ok {
		return name
	}
	return types.IllegalName
}

func (d Driver) Name() string { return d.String() }

func (d Driver) Desc() string {
	if desc, ok := driverDescs[d]; ok {
		return desc
	}
	return types.IllegalDesc
}

// IsSQL reports whether the driver is served by the Bun-backed store.
func (d Driver) IsSQL() bool {
	return d == DriverSQLite || d == DriverMySQL || d == DriverPostgres
}

// ParseDriver maps a configuration string to a Driver. Unknown strings map to
// an invalid driver value.
func ParseDriver(s string) Driver {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "mysql":
		return DriverMySQL
	case "postgres", "postgresql":
		return DriverPostgres
	case "redis":
		return DriverRedis
	case "memory", "":
		return DriverMemory
	default:
		return Driver(types.IllegalValue)
	}
}
