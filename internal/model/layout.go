package model

// NumberingScheme controls how row letters are assigned across sections.
//
//	per_section - every section restarts at row A.
//	continuous  - row letters continue across all sections that opt in,
//	              ordered by their anchor position (top to bottom, then
//	              left to right).
type NumberingScheme string

const (
	NumberingPerSection NumberingScheme = "per_section"
	NumberingContinuous NumberingScheme = "continuous"
)

// Direction controls how the raw column index is turned into the printed
// seat number of a block.
type Direction string

const (
	DirectionLeft   Direction = "left"   // 1..n from the left edge
	DirectionRight  Direction = "right"  // 1..n from the right edge
	DirectionCenter Direction = "center" // 1 in the middle, radiating outward
)

// FeaturePartialView marks seats with an obstructed view.  Such seats are
// still bookable but start in the PARTIAL_VIEW status.
const FeaturePartialView = "partial_view"

// Position is an anchor in world units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tier is a price level shared by one or more row blocks.
type Tier struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Color string  `json:"color"`
}

// VenueLayout is the declarative description of a venue for one event.  It
// is produced by the external booking service and never mutated here.
type VenueLayout struct {
	EventID  string    `json:"eventId"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// Section is a named seating area.  RowCount and ColumnCount give the full
// extent used when a RowConfig leaves one of its bounds open.
type Section struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Prefix      string          `json:"prefix"`
	Position    Position        `json:"position"`
	Numbering   NumberingScheme `json:"numbering"`
	SkipLetters []string        `json:"skipLetters,omitempty"`
	RowCount    int             `json:"rowCount"`
	ColumnCount int             `json:"columnCount"`
	Rows        []RowConfig     `json:"rows"`
}

// IDPrefix returns the prefix used when composing seat identifiers.
func (s Section) IDPrefix() string {
	if s.Prefix != "" {
		return s.Prefix
	}
	return s.ID
}

// RowConfig is a rectangular block of seats inside a section.  Rows and
// columns are 1-based; a nil bound means "the section's full extent".
type RowConfig struct {
	FromRow        *int      `json:"fromRow,omitempty"`
	ToRow          *int      `json:"toRow,omitempty"`
	FromColumn     *int      `json:"fromColumn,omitempty"`
	ToColumn       *int      `json:"toColumn,omitempty"`
	Tier           Tier      `json:"tier"`
	BlockLetter    string    `json:"blockLetter,omitempty"`
	Direction      Direction `json:"numberingDirection,omitempty"`
	GapAfterColumn *int      `json:"gapAfterColumn,omitempty"`
	GapSize        int       `json:"gapSize,omitempty"`
	Features       []string  `json:"features,omitempty"`
}

// HasRowRange reports whether the block restricts rows.  Configs without a
// row range only match by column and rank after row-matching configs.
func (rc RowConfig) HasRowRange() bool {
	return rc.FromRow != nil || rc.ToRow != nil
}

// HasFeature reports whether the block carries the given feature tag.
func (rc RowConfig) HasFeature(name string) bool {
	for _, f := range rc.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Int returns a pointer to v.  It keeps layout literals short.
func Int(v int) *int { return &v }
