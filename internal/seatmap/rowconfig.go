package seatmap

import (
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// resolvedConfig is a RowConfig with its open bounds filled in from the
// section extent.
type resolvedConfig struct {
	cfg         *model.RowConfig
	index       int // declaration order inside the section
	fromRow     int
	toRow       int
	fromCol     int
	toCol       int
	rowMatching bool
	gapAfter    int // 0 when the block has no gap
}

func (rc *resolvedConfig) containsRow(row int) bool {
	return row >= rc.fromRow && row <= rc.toRow
}

func (rc *resolvedConfig) containsCol(col int) bool {
	return col >= rc.fromCol && col <= rc.toCol
}

// gapShift returns the number of blank columns inserted before col inside
// the block.  The gap only counts when it falls within first..last.
func (rc *resolvedConfig) gapShift(col, first, last int) int {
	if !rc.hasGap(first, last) || col <= rc.gapAfter {
		return 0
	}
	return rc.cfg.GapSize
}

// trailingGap returns the padding after a gap placed on the block's last
// column.  It separates the block from the next one in the row.
func (rc *resolvedConfig) trailingGap(first, last int) int {
	if !rc.hasGap(first, last) || rc.gapAfter != last {
		return 0
	}
	return rc.cfg.GapSize
}

func (rc *resolvedConfig) hasGap(first, last int) bool {
	return rc.gapAfter > 0 && rc.cfg.GapSize > 0 && rc.gapAfter >= first && rc.gapAfter <= last
}

// sectionPlan holds everything the generator needs about one section.
type sectionPlan struct {
	skip    map[string]struct{}
	configs []*resolvedConfig // row-matching first, then column-only
	maxRows int
}

func (g *Generator) plan(sec model.Section) sectionPlan {
	p := sectionPlan{skip: skipSet(sec.SkipLetters)}
	var rowOnly, colOnly []*resolvedConfig
	for i := range sec.Rows {
		rc, ok := resolveConfig(sec, i)
		if !ok {
			g.log.Debug("ignoring row config with invalid bounds",
				zap.String("section", sec.ID), zap.Int("index", i))
			continue
		}
		if rc.rowMatching {
			rowOnly = append(rowOnly, rc)
		} else {
			colOnly = append(colOnly, rc)
		}
		if rc.toRow > p.maxRows {
			p.maxRows = rc.toRow
		}
	}
	p.configs = append(rowOnly, colOnly...)

	// A section without any declared block is a plain grid of default seats.
	if len(sec.Rows) == 0 && sec.RowCount > 0 && sec.ColumnCount > 0 {
		p.configs = []*resolvedConfig{{
			cfg:     &DefaultRowConfig,
			index:   -1,
			fromRow: 1, toRow: sec.RowCount,
			fromCol: 1, toCol: sec.ColumnCount,
		}}
		p.maxRows = sec.RowCount
	}
	return p
}

// resolveConfig fills in open bounds and rejects inverted or non-positive
// ranges.
func resolveConfig(sec model.Section, i int) (*resolvedConfig, bool) {
	cfg := &sec.Rows[i]
	rc := &resolvedConfig{
		cfg:         cfg,
		index:       i,
		fromRow:     intOr(cfg.FromRow, 1),
		toRow:       intOr(cfg.ToRow, sec.RowCount),
		fromCol:     intOr(cfg.FromColumn, 1),
		toCol:       intOr(cfg.ToColumn, sec.ColumnCount),
		rowMatching: cfg.HasRowRange(),
		gapAfter:    intOr(cfg.GapAfterColumn, 0),
	}
	if rc.fromRow < 1 || rc.fromCol < 1 || rc.toRow < rc.fromRow || rc.toCol < rc.fromCol {
		return nil, false
	}
	return rc, true
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// blocksForRow splits a 1-based row between the configs that match it.  Each
// cell goes to the first config in priority order; placement is left to right
// by each block's first column.
func (p sectionPlan) blocksForRow(row int) []block {
	claimed := make(map[int]struct{})
	var blocks []block
	for _, rc := range p.configs {
		if !rc.containsRow(row) {
			continue
		}
		var cols []int
		for c := rc.fromCol; c <= rc.toCol; c++ {
			if _, taken := claimed[c]; taken {
				continue
			}
			claimed[c] = struct{}{}
			cols = append(cols, c)
		}
		if len(cols) > 0 {
			blocks = append(blocks, block{rc: rc, cols: cols})
		}
	}
	for i := 1; i < len(blocks); i++ {
		for j := i; j > 0 && blocks[j].cols[0] < blocks[j-1].cols[0]; j-- {
			blocks[j], blocks[j-1] = blocks[j-1], blocks[j]
		}
	}
	return blocks
}

// EffectiveConfig returns the config that owns the cell at a 1-based row and
// column of a section: the first matching config in priority order, or
// DefaultRowConfig when none matches.
func EffectiveConfig(sec model.Section, row, col int) model.RowConfig {
	p := NewGenerator(nil).plan(sec)
	for _, rc := range p.configs {
		if rc.containsRow(row) && rc.containsCol(col) {
			return *rc.cfg
		}
	}
	return DefaultRowConfig
}
