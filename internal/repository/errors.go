// Package repository holds the MySQL-backed stores for layout documents,
// seat overrides and committed carts, plus a Redis read-through cache for
// layouts.  Sentinel errors below let handlers pick the HTTP status.
package repository

import "errors"

// ErrLayoutNotFound is returned when no layout document exists for an
// event.  Handlers translate it into 404.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrConflict is returned when a write cannot proceed because of existing
// state.  Cart conflicts surface as *seatmap.ConflictError instead, which
// carries the offending seat ids.
var ErrConflict = errors.New("conflict")
