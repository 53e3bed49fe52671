package seatmap

import (
	"context"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// Cart accepts a finalized seat list for an event.  Implementations return a
// *ConflictError when some seats can no longer be sold; any returned error
// leaves the engine's selection untouched.
type Cart interface {
	AddSeats(ctx context.Context, eventID string, seats []model.CartSeat) error
}

// CartFunc adapts a function to the Cart interface.
type CartFunc func(ctx context.Context, eventID string, seats []model.CartSeat) error

// AddSeats calls f.
func (f CartFunc) AddSeats(ctx context.Context, eventID string, seats []model.CartSeat) error {
	return f(ctx, eventID, seats)
}
