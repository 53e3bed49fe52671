package model

// Status is the visual and booking state of a single seat.
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusPartialView Status = "PARTIAL_VIEW"
	StatusSelected    Status = "SELECTED"
	StatusBlocked     Status = "BLOCKED"
	StatusReserved    Status = "RESERVED"
	StatusSold        Status = "SOLD"
)

// Selectable reports whether a seat in this status may be picked by the
// user.  Partial-view seats are bookable, they only carry a warning.
func (s Status) Selectable() bool {
	return s == StatusAvailable || s == StatusPartialView
}

// Seat is derived from a VenueLayout by the generator; it is never authored
// directly.  Seats are discarded and rebuilt on every generation pass.
//
// Fields:
//
//	ID          - identifier under the section's numbering scheme.
//	AltID       - the same seat under the other scheme, used for override lookups.
//	SectionID   - owning section.
//	Scheme      - numbering scheme of the owning section.
//	BlockLetter - block the seat belongs to (defaults to A).
//	Row         - printed row label (A, B, ..., AA, or RowN as a fallback).
//	RowIndex    - 0-based row inside the section.
//	Column      - 1-based raw column from the layout document.
//	Number      - printed seat number after the numbering-direction transform.
//	X, Y        - world coordinates of the seat centre.
//	Radius      - hit radius in world units.
//	BaseStatus  - status before overrides (AVAILABLE or PARTIAL_VIEW).
//	Status      - current status.
type Seat struct {
	ID          string          `json:"id"`
	AltID       string          `json:"altId"`
	SectionID   string          `json:"sectionId"`
	SectionName string          `json:"sectionName"`
	Prefix      string          `json:"-"`
	Scheme      NumberingScheme `json:"-"`
	BlockLetter string          `json:"block"`
	Row         string          `json:"row"`
	RowIndex    int             `json:"-"`
	Column      int             `json:"-"`
	Number      int             `json:"number"`
	Tier        Tier            `json:"tier"`
	Features    []string        `json:"features,omitempty"`
	X           float64         `json:"x"`
	Y           float64         `json:"y"`
	Radius      float64         `json:"radius"`
	BaseStatus  Status          `json:"-"`
	Status      Status          `json:"status"`
}

// SelectedSeat is a snapshot of a seat taken when it was selected.  It does
// not reference the live Seat so a commit survives re-generation.
type SelectedSeat struct {
	SeatID      string   `json:"seatId"`
	AltID       string   `json:"-"`
	SectionID   string   `json:"sectionId"`
	SectionName string   `json:"sectionName"`
	Row         string   `json:"row"`
	Number      int      `json:"number"`
	Tier        Tier     `json:"tier"`
	Features    []string `json:"features,omitempty"`
}

// Snapshot captures the parts of a seat that a cart needs.
func (s *Seat) Snapshot() SelectedSeat {
	var features []string
	if len(s.Features) > 0 {
		features = append([]string(nil), s.Features...)
	}
	return SelectedSeat{
		SeatID:      s.ID,
		AltID:       s.AltID,
		SectionID:   s.SectionID,
		SectionName: s.SectionName,
		Row:         s.Row,
		Number:      s.Number,
		Tier:        s.Tier,
		Features:    features,
	}
}
