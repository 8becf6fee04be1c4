// Package repository contains the data access layer, separated from the
// HTTP handlers. Sentinel errors defined here let handlers translate
// failure scenarios into the right status codes without inspecting
// driver errors themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a record does not exist. Handlers map it
// to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint is violated, for
// example a role or product name that already exists. Handlers map it
// to HTTP 400/409.
var ErrDuplicate = errors.New("already exists")

// isDuplicate detects the MySQL duplicate-entry error (code 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
