package seatmap

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// Placement constants in world units.
const (
	SeatSpacing   = 30.0 // horizontal distance between adjacent columns
	RowSpacing    = 34.0 // vertical distance between adjacent rows
	SeatRadius    = 12.0 // drawn radius and hit radius of a seat
	BlockGap      = 2    // blank columns between two blocks of the same row
	SurfaceMargin = 40.0 // padding around the content bounding box
)

// DefaultTier applies to seats that no RowConfig claims: the lowest tier, free.
var DefaultTier = model.Tier{ID: "standard", Name: "Standard", Price: 0, Color: "#B0BEC5"}

// DefaultRowConfig is the effective config of a seat no declared config matches.
var DefaultRowConfig = model.RowConfig{Tier: DefaultTier, Direction: model.DirectionLeft}

// Layout is the result of a generation pass.  Width and Height describe the
// drawing surface; every seat lies inside it.
type Layout struct {
	Seats  []model.Seat
	Width  float64
	Height float64
}

// Generator turns venue layouts into seats.  It is stateless apart from its
// logger and is safe to reuse across passes.
type Generator struct {
	log *zap.Logger
}

// NewGenerator returns a Generator.  A nil logger disables logging.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log}
}

// Generate produces every seat of every section.  Identical input always
// yields an identical seat list in identical order.
func Generate(layout model.VenueLayout) Layout {
	return NewGenerator(nil).Generate(layout)
}

// Generate produces every seat of every section.
func (g *Generator) Generate(layout model.VenueLayout) Layout {
	return g.generate(layout, func(model.Section) bool { return true })
}

// GenerateSection produces the seats of a single section.  Continuous row
// letters still account for every earlier section of the document.  An
// unknown section id yields an empty layout.
func (g *Generator) GenerateSection(layout model.VenueLayout, sectionID string) Layout {
	return g.generate(layout, func(s model.Section) bool { return s.ID == sectionID })
}

// block is one config's share of a row after overlap resolution.
type block struct {
	rc   *resolvedConfig
	cols []int
}

func (g *Generator) generate(layout model.VenueLayout, include func(model.Section) bool) Layout {
	plans := make([]sectionPlan, len(layout.Sections))
	for i := range layout.Sections {
		plans[i] = g.plan(layout.Sections[i])
	}
	starts := startingRowIndexes(layout.Sections, plans)

	var seats []model.Seat
	for i := range layout.Sections {
		sec := layout.Sections[i]
		if !include(sec) {
			continue
		}
		seats = append(seats, g.sectionSeats(sec, plans[i], starts[i])...)
	}
	return normalize(seats)
}

// startingRowIndexes returns, per section, the offset of its first row in the
// global letter sequence.  Per-section numbering always starts at 0; each
// continuous section starts after all continuous sections above it (or to
// its left on the same line).
func startingRowIndexes(sections []model.Section, plans []sectionPlan) []int {
	starts := make([]int, len(sections))
	var order []int
	for i, s := range sections {
		if s.Numbering == model.NumberingContinuous {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := sections[order[a]].Position, sections[order[b]].Position
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		return pa.X < pb.X
	})
	next := 0
	for _, i := range order {
		starts[i] = next
		next += plans[i].maxRows + len(plans[i].skip)
	}
	return starts
}

func (g *Generator) sectionSeats(sec model.Section, plan sectionPlan, start int) []model.Seat {
	type placed struct {
		seat model.Seat
		unit float64
	}
	rows := make([][]placed, plan.maxRows)
	widths := make([]float64, plan.maxRows)
	content := 0.0
	prefix := sec.IDPrefix()

	for r := 0; r < plan.maxRows; r++ {
		letterIdx := r
		if sec.Numbering == model.NumberingContinuous {
			letterIdx = start + r
		}
		label := RowLetter(letterIdx, plan.skip)

		blocks := plan.blocksForRow(r + 1)
		offset, pending := 0.0, 0.0
		for bi, b := range blocks {
			if bi > 0 {
				offset += BlockGap + pending
			}
			first, last := b.cols[0], b.cols[len(b.cols)-1]
			for _, col := range b.cols {
				unit := offset + float64(col-first+b.rc.gapShift(col, first, last))
				rows[r] = append(rows[r], placed{
					seat: newSeat(sec, prefix, b.rc, label, r, col),
					unit: unit,
				})
			}
			offset += float64(last - first + 1 + b.rc.gapShift(last, first, last))
			pending = float64(b.rc.trailingGap(first, last))
		}
		widths[r] = offset
		if offset > content {
			content = offset
		}
	}

	var out []model.Seat
	for r, row := range rows {
		shift := (content - widths[r]) / 2
		for _, p := range row {
			s := p.seat
			s.X = sec.Position.X + (shift+p.unit+0.5-content/2)*SeatSpacing
			s.Y = sec.Position.Y + float64(r)*RowSpacing
			out = append(out, s)
		}
	}
	return out
}

func newSeat(sec model.Section, prefix string, rc *resolvedConfig, row string, r, col int) model.Seat {
	cfg := rc.cfg
	blockLetter := cfg.BlockLetter
	if blockLetter == "" {
		blockLetter = DefaultBlockLetter
	}
	number := SeatNumber(cfg.Direction, col, rc.fromCol, rc.toCol-rc.fromCol+1)
	id, alt := SeatIDs(sec.Numbering, prefix, blockLetter, row, number)
	base := model.StatusAvailable
	if cfg.HasFeature(model.FeaturePartialView) {
		base = model.StatusPartialView
	}
	var features []string
	if len(cfg.Features) > 0 {
		features = append([]string(nil), cfg.Features...)
	}
	return model.Seat{
		ID:          id,
		AltID:       alt,
		SectionID:   sec.ID,
		SectionName: sec.Name,
		Prefix:      prefix,
		Scheme:      sec.Numbering,
		BlockLetter: blockLetter,
		Row:         row,
		RowIndex:    r,
		Column:      col,
		Number:      number,
		Tier:        cfg.Tier,
		Features:    features,
		Radius:      SeatRadius,
		BaseStatus:  base,
		Status:      base,
	}
}

// normalize translates seats so their bounding box starts at SurfaceMargin
// and computes the surface size.
func normalize(seats []model.Seat) Layout {
	if len(seats) == 0 {
		return Layout{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, s := range seats {
		minX = math.Min(minX, s.X-s.Radius)
		minY = math.Min(minY, s.Y-s.Radius)
		maxX = math.Max(maxX, s.X+s.Radius)
		maxY = math.Max(maxY, s.Y+s.Radius)
	}
	dx, dy := SurfaceMargin-minX, SurfaceMargin-minY
	for i := range seats {
		seats[i].X += dx
		seats[i].Y += dy
	}
	return Layout{
		Seats:  seats,
		Width:  maxX - minX + 2*SurfaceMargin,
		Height: maxY - minY + 2*SurfaceMargin,
	}
}
