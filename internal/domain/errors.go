// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist. Lookup adapters
// return it (optionally wrapped) so callers can classify absence without
// inspecting adapter internals.
var ErrNotFound = errors.New("not found")
