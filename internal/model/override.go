package model

// SeatOverride is an externally supplied status for a single seat id.  The
// id may follow either numbering scheme; see seatmap.Resolve.
type SeatOverride struct {
	SeatID    string `json:"seatId"`
	Status    string `json:"status,omitempty"`
	Reason    string `json:"reason,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

// OverrideDocument carries the three independent override collections of an
// event (or of one section, for paginated clients).  Read-only input.
type OverrideDocument struct {
	ReservedSeats []SeatOverride `json:"reservedSeats"`
	BlockedSeats  []SeatOverride `json:"blockedSeats"`
	SoldSeats     []SeatOverride `json:"soldSeats"`
}

// Len returns the total number of overrides across all collections.
func (d OverrideDocument) Len() int {
	return len(d.ReservedSeats) + len(d.BlockedSeats) + len(d.SoldSeats)
}
