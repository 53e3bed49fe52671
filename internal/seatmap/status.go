package seatmap

import "github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"

// Overrides indexes an OverrideDocument by seat id.  Build it once per load;
// it is read-only afterwards.
type Overrides struct {
	sold     map[string]model.SeatOverride
	reserved map[string]model.SeatOverride
	blocked  map[string]model.SeatOverride
}

// NewOverrides indexes the three override collections of a document.
func NewOverrides(doc model.OverrideDocument) Overrides {
	return Overrides{
		sold:     indexOverrides(doc.SoldSeats),
		reserved: indexOverrides(doc.ReservedSeats),
		blocked:  indexOverrides(doc.BlockedSeats),
	}
}

func indexOverrides(list []model.SeatOverride) map[string]model.SeatOverride {
	m := make(map[string]model.SeatOverride, len(list))
	for _, o := range list {
		if o.SeatID == "" {
			continue
		}
		if _, dup := m[o.SeatID]; !dup {
			m[o.SeatID] = o
		}
	}
	return m
}

// lookup tries the seat's own id first and then its alternate-format id.
func lookup(m map[string]model.SeatOverride, seat *model.Seat) (model.SeatOverride, bool) {
	if o, ok := m[seat.ID]; ok {
		return o, true
	}
	if seat.AltID != "" {
		if o, ok := m[seat.AltID]; ok {
			return o, true
		}
	}
	return model.SeatOverride{}, false
}

// Override returns the highest-precedence override that applies to the seat.
func (o Overrides) Override(seat *model.Seat) (model.Status, model.SeatOverride, bool) {
	if ov, ok := lookup(o.sold, seat); ok {
		return model.StatusSold, ov, true
	}
	if ov, ok := lookup(o.reserved, seat); ok {
		return model.StatusReserved, ov, true
	}
	if ov, ok := lookup(o.blocked, seat); ok {
		return model.StatusBlocked, ov, true
	}
	return "", model.SeatOverride{}, false
}

// Resolve merges overrides and the live selection into one status, highest
// precedence first: SOLD, RESERVED, BLOCKED, SELECTED, then the seat's base
// status.  A seat missing from every source is bookable.
func Resolve(seat *model.Seat, overrides Overrides, selected map[string]struct{}) model.Status {
	if st, _, ok := overrides.Override(seat); ok {
		return st
	}
	if _, ok := selected[seat.ID]; ok {
		return model.StatusSelected
	}
	if seat.BaseStatus != "" {
		return seat.BaseStatus
	}
	return model.StatusAvailable
}
