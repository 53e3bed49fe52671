// Package seatmap is the seat-map layout and interactive selection engine.
// It turns a declarative venue layout into positioned seats, resolves their
// status from override documents, hit-tests pointer positions, drives the
// selection state machine and hands finalized selections to a Cart.
//
// The package holds no global state and performs no I/O; every mutation goes
// through an Engine owned by a single caller.
package seatmap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSeatNotFound is returned when a seat id is not part of the active layout.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrSeatUnavailable is returned when selecting a seat that is sold,
	// reserved, blocked or already selected.
	ErrSeatUnavailable = errors.New("seat is not available")
	// ErrNotSelected is returned when deselecting a seat that is not selected.
	ErrNotSelected = errors.New("seat is not selected")
	// ErrSelectionLimit is returned when the selection is already full.  It is
	// also surfaced as a transient notice, see Engine.Notice.
	ErrSelectionLimit = errors.New("selection limit reached")
	// ErrEmptySelection is returned by Commit when nothing is selected.
	ErrEmptySelection = errors.New("no seats selected")
	// ErrStaleLoad is returned when a load result arrives for a key that is no
	// longer active.  The result is discarded.
	ErrStaleLoad = errors.New("stale layout load discarded")
	// ErrNoLayout is returned by operations that need a loaded layout.
	ErrNoLayout = errors.New("no layout loaded")
)

// ConflictError is returned by a Cart that rejects a seat list, typically
// because some seats were sold between selection and commit.
type ConflictError struct {
	SeatIDs []string
	Message string
}

func (e *ConflictError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "seats no longer available"
	}
	if len(e.SeatIDs) == 0 {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(e.SeatIDs, ","))
}

// Unwrap lets errors.Is(err, ErrSeatUnavailable) match cart conflicts.
func (e *ConflictError) Unwrap() error { return ErrSeatUnavailable }
