package main

import (
	"strconv"
	"strings"
)

// migrationVersion extracts the numeric prefix of a migration file name,
// e.g. 20250101000001 from 20250101000001_create_users.up.sql.
func migrationVersion(name string) (uint64, bool) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseUint(prefix, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
