package seatmap

import "github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"

// DefaultMaxSelection is the usual per-order seat limit.
const DefaultMaxSelection = 8

// Selection is the bounded selection state machine.  It is the only writer of
// transitions into and out of SELECTED, and it remembers each seat's status
// from before it was selected so a deselect can restore it exactly.
//
// Entries are keyed by the seat's slot in the engine's seat list, not by its
// id: two blocks of a row may legitimately print the same id.
type Selection struct {
	max       int
	order     []int
	snapshots map[int]model.SelectedSeat
	prior     map[int]model.Status
}

// NewSelection returns an empty selection holding at most max seats.  A
// non-positive max selects DefaultMaxSelection.
func NewSelection(max int) *Selection {
	if max <= 0 {
		max = DefaultMaxSelection
	}
	return &Selection{
		max:       max,
		snapshots: make(map[int]model.SelectedSeat),
		prior:     make(map[int]model.Status),
	}
}

// Len returns the number of selected seats.
func (s *Selection) Len() int { return len(s.order) }

// Max returns the capacity.
func (s *Selection) Max() int { return s.max }

// Contains reports whether the seat in slot is selected.
func (s *Selection) Contains(slot int) bool {
	_, ok := s.snapshots[slot]
	return ok
}

// Slots returns the selected slots in selection order.
func (s *Selection) Slots() []int {
	return append([]int(nil), s.order...)
}

// IDs returns selected seat ids in selection order.
func (s *Selection) IDs() []string {
	out := make([]string, 0, len(s.order))
	for _, slot := range s.order {
		out = append(out, s.snapshots[slot].SeatID)
	}
	return out
}

// Snapshot returns the selected seats in selection order.
func (s *Selection) Snapshot() []model.SelectedSeat {
	out := make([]model.SelectedSeat, 0, len(s.order))
	for _, slot := range s.order {
		out = append(out, s.snapshots[slot])
	}
	return out
}

// Select moves the bookable seat in slot to SELECTED.
func (s *Selection) Select(slot int, seat *model.Seat) error {
	if s.Contains(slot) || !seat.Status.Selectable() {
		return ErrSeatUnavailable
	}
	if len(s.order) >= s.max {
		return ErrSelectionLimit
	}
	s.adopt(slot, seat, seat.Status)
	seat.Status = model.StatusSelected
	return nil
}

// adopt records a seat as selected with the given pre-selection status.
func (s *Selection) adopt(slot int, seat *model.Seat, prior model.Status) {
	s.order = append(s.order, slot)
	s.snapshots[slot] = seat.Snapshot()
	s.prior[slot] = prior
}

// Deselect restores the selected seat in slot to the status it had before
// selection.
func (s *Selection) Deselect(slot int, seat *model.Seat) error {
	if !s.Contains(slot) || seat.Status != model.StatusSelected {
		return ErrNotSelected
	}
	seat.Status = s.priorStatus(slot, seat)
	s.remove(slot)
	return nil
}

func (s *Selection) priorStatus(slot int, seat *model.Seat) model.Status {
	if st, ok := s.prior[slot]; ok && st != "" {
		return st
	}
	if seat.BaseStatus != "" {
		return seat.BaseStatus
	}
	return model.StatusAvailable
}

func (s *Selection) remove(slot int) {
	delete(s.snapshots, slot)
	delete(s.prior, slot)
	for i, v := range s.order {
		if v == slot {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Restore empties the selection, running the per-seat restore for every slot
// the lookup still resolves.  Slots the lookup cannot find are forgotten.
func (s *Selection) Restore(lookup func(slot int) *model.Seat) {
	for _, slot := range s.order {
		if seat := lookup(slot); seat != nil && seat.Status == model.StatusSelected {
			seat.Status = s.priorStatus(slot, seat)
		}
	}
	s.order = nil
	s.snapshots = make(map[int]model.SelectedSeat)
	s.prior = make(map[int]model.Status)
}
