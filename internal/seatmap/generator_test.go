package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

func TestGenerate_Deterministic(t *testing.T) {
	venue := testVenue()

	first := Generate(venue)
	second := Generate(venue)

	assert.Equal(t, first, second)
	assert.Len(t, first.Seats, 2*5+3*4)
}

func TestGenerate_CenterNumberingAndIDs(t *testing.T) {
	layout := Generate(model.VenueLayout{Sections: []model.Section{vipSection()}})
	require.Len(t, layout.Seats, 10)

	var ids []string
	for _, s := range layout.Seats[:5] {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"VIP-L-A4", "VIP-L-A2", "VIP-L-A1", "VIP-L-A3", "VIP-L-A5"}, ids)

	s := layout.Seats[2]
	assert.Equal(t, "A", s.Row)
	assert.Equal(t, 3, s.Column)
	assert.Equal(t, 1, s.Number)
	assert.Equal(t, "VIP-A1", s.AltID)
	assert.Equal(t, vipTier, s.Tier)
	assert.Equal(t, model.StatusAvailable, s.Status)

	assert.Equal(t, "B", layout.Seats[5].Row)
}

func TestGenerate_IDRoundTrip(t *testing.T) {
	layout := Generate(testVenue())
	seen := make(map[string]struct{}, len(layout.Seats))
	for _, s := range layout.Seats {
		assert.Equal(t, ComposeID(s.Scheme, s.Prefix, s.BlockLetter, s.Row, s.Number), s.ID)
		_, dup := seen[s.ID]
		assert.False(t, dup, "duplicate id %s", s.ID)
		seen[s.ID] = struct{}{}
	}
}

func TestGenerate_NormalizedSurface(t *testing.T) {
	layout := Generate(testVenue())

	assert.Equal(t, 224.0, layout.Width)
	assert.Equal(t, 472.0, layout.Height)
	for _, s := range layout.Seats {
		assert.GreaterOrEqual(t, s.X-s.Radius, SurfaceMargin)
		assert.GreaterOrEqual(t, s.Y-s.Radius, SurfaceMargin)
		assert.LessOrEqual(t, s.X+s.Radius, layout.Width-SurfaceMargin)
		assert.LessOrEqual(t, s.Y+s.Radius, layout.Height-SurfaceMargin)
	}
	assert.Equal(t, 52.0, layout.Seats[0].X)
	assert.Equal(t, 52.0, layout.Seats[0].Y)
}

func TestGenerateSection(t *testing.T) {
	g := NewGenerator(nil)

	layout := g.GenerateSection(testVenue(), "stalls")
	require.Len(t, layout.Seats, 12)
	for _, s := range layout.Seats {
		assert.Equal(t, "stalls", s.SectionID)
	}
	assert.Equal(t, "ST-A-A1", layout.Seats[0].ID)
	assert.Equal(t, 52.0, layout.Seats[0].X)

	empty := g.GenerateSection(testVenue(), "balcony")
	assert.Empty(t, empty.Seats)
	assert.Zero(t, empty.Width)
}

func TestGenerate_RightNumbering(t *testing.T) {
	sec := stallsSection()
	sec.Rows[0].Direction = model.DirectionRight

	layout := Generate(model.VenueLayout{Sections: []model.Section{sec}})

	var numbers []int
	for _, s := range layout.Seats[:4] {
		numbers = append(numbers, s.Number)
	}
	assert.Equal(t, []int{4, 3, 2, 1}, numbers)
}

func TestGenerate_SkipLetters(t *testing.T) {
	sec := stallsSection()
	sec.RowCount = 10
	sec.SkipLetters = []string{"i"}

	layout := Generate(model.VenueLayout{Sections: []model.Section{sec}})

	rows := map[string]bool{}
	for _, s := range layout.Seats {
		rows[s.Row] = true
	}
	assert.False(t, rows["I"])
	assert.True(t, rows["H"])
	assert.True(t, rows["K"])
	assert.Len(t, rows, 10)
}

func TestGenerate_ContinuousStartingRow(t *testing.T) {
	upper := model.Section{
		ID: "upper", Prefix: "UP", Numbering: model.NumberingContinuous,
		Position: model.Position{X: 0, Y: 400}, RowCount: 2, ColumnCount: 2,
		Rows: []model.RowConfig{{Tier: mainTier}},
	}
	lower := model.Section{
		ID: "lower", Prefix: "LO", Numbering: model.NumberingContinuous,
		Position: model.Position{X: 0, Y: 0}, RowCount: 3, ColumnCount: 2,
		SkipLetters: []string{"B"},
		Rows:        []model.RowConfig{{Tier: mainTier}},
	}

	// Declared out of position order on purpose.
	layout := Generate(model.VenueLayout{Sections: []model.Section{upper, lower}})

	var upperRows, lowerRows []string
	for _, s := range layout.Seats {
		if s.Column != 1 {
			continue
		}
		if s.SectionID == "upper" {
			upperRows = append(upperRows, s.Row)
		} else {
			lowerRows = append(lowerRows, s.Row)
		}
	}
	assert.Equal(t, []string{"A", "C", "D"}, lowerRows)
	assert.Equal(t, []string{"E", "F"}, upperRows)

	s := seatByID(t, layout.Seats, "UP-E1")
	assert.Equal(t, "UP-A-E1", s.AltID)
}

func TestGenerate_GapAndBlocks(t *testing.T) {
	t.Run("gap inside block", func(t *testing.T) {
		sec := model.Section{
			ID: "g", RowCount: 1, ColumnCount: 6,
			Rows: []model.RowConfig{{Tier: mainTier, GapAfterColumn: model.Int(3), GapSize: 2}},
		}
		seats := Generate(model.VenueLayout{Sections: []model.Section{sec}}).Seats
		require.Len(t, seats, 6)
		assert.InDelta(t, SeatSpacing, seats[1].X-seats[0].X, 1e-9)
		assert.InDelta(t, 3*SeatSpacing, seats[3].X-seats[2].X, 1e-9)
	})

	t.Run("gap on block edge pads before the next block", func(t *testing.T) {
		sec := model.Section{
			ID: "g", Numbering: model.NumberingContinuous, RowCount: 1, ColumnCount: 10,
			Rows: []model.RowConfig{
				{FromColumn: model.Int(1), ToColumn: model.Int(5), Tier: mainTier, BlockLetter: "L", GapAfterColumn: model.Int(5), GapSize: 3},
				{FromColumn: model.Int(6), ToColumn: model.Int(10), Tier: mainTier, BlockLetter: "R"},
			},
		}
		seats := Generate(model.VenueLayout{Sections: []model.Section{sec}}).Seats
		require.Len(t, seats, 10)
		require.Equal(t, 5, seats[4].Column)
		require.Equal(t, 6, seats[5].Column)
		assert.InDelta(t, float64(1+BlockGap+3)*SeatSpacing, seats[5].X-seats[4].X, 1e-9)
	})

	t.Run("trailing gap of the last block adds no width", func(t *testing.T) {
		sec := model.Section{
			ID: "g", RowCount: 1, ColumnCount: 3,
			Rows: []model.RowConfig{{Tier: mainTier, GapAfterColumn: model.Int(3), GapSize: 4}},
		}
		layout := Generate(model.VenueLayout{Sections: []model.Section{sec}})
		assert.Equal(t, 3*SeatSpacing-SeatSpacing+2*SeatRadius+2*SurfaceMargin, layout.Width)
	})

	t.Run("blocks separated", func(t *testing.T) {
		sec := model.Section{
			ID: "b", RowCount: 1, ColumnCount: 6,
			Rows: []model.RowConfig{
				{FromRow: model.Int(1), ToRow: model.Int(1), FromColumn: model.Int(4), ToColumn: model.Int(6), Tier: mainTier, BlockLetter: "R"},
				{FromRow: model.Int(1), ToRow: model.Int(1), FromColumn: model.Int(1), ToColumn: model.Int(3), Tier: vipTier, BlockLetter: "L"},
			},
		}
		seats := Generate(model.VenueLayout{Sections: []model.Section{sec}}).Seats
		require.Len(t, seats, 6)
		assert.Equal(t, "b-L-A1", seats[0].ID)
		assert.Equal(t, "b-R-A1", seats[3].ID)
		assert.InDelta(t, float64(1+BlockGap)*SeatSpacing, seats[3].X-seats[2].X, 1e-9)
	})
}

func TestGenerate_OverlapFirstConfigWins(t *testing.T) {
	sec := model.Section{
		ID: "o", RowCount: 2, ColumnCount: 6,
		Rows: []model.RowConfig{
			{FromColumn: model.Int(3), ToColumn: model.Int(6), Tier: mainTier, BlockLetter: "B"},
			{FromRow: model.Int(1), ToRow: model.Int(2), FromColumn: model.Int(1), ToColumn: model.Int(4), Tier: vipTier, BlockLetter: "A"},
		},
	}

	seats := Generate(model.VenueLayout{Sections: []model.Section{sec}}).Seats
	require.Len(t, seats, 12)

	perCell := map[[2]int]int{}
	for _, s := range seats {
		perCell[[2]int{s.RowIndex, s.Column}]++
		if s.Column <= 4 {
			assert.Equal(t, vipTier, s.Tier, "column %d", s.Column)
		} else {
			assert.Equal(t, mainTier, s.Tier, "column %d", s.Column)
		}
	}
	for cell, n := range perCell {
		assert.Equal(t, 1, n, "cell %v", cell)
	}

	assert.Equal(t, vipTier, EffectiveConfig(sec, 1, 3).Tier)
	assert.Equal(t, mainTier, EffectiveConfig(sec, 2, 6).Tier)
	assert.Equal(t, DefaultTier, EffectiveConfig(sec, 3, 1).Tier)
}

func TestGenerate_InvalidConfigs(t *testing.T) {
	t.Run("inverted bounds ignored", func(t *testing.T) {
		sec := model.Section{
			ID: "x", RowCount: 4, ColumnCount: 4,
			Rows: []model.RowConfig{{FromRow: model.Int(3), ToRow: model.Int(1), Tier: mainTier}},
		}
		layout := Generate(model.VenueLayout{Sections: []model.Section{sec}})
		assert.Empty(t, layout.Seats)
		assert.Zero(t, layout.Width)
		assert.Zero(t, layout.Height)
	})

	t.Run("empty section", func(t *testing.T) {
		layout := Generate(model.VenueLayout{Sections: []model.Section{{ID: "empty"}}})
		assert.Empty(t, layout.Seats)
	})

	t.Run("no configs uses default grid", func(t *testing.T) {
		seats := Generate(model.VenueLayout{Sections: []model.Section{{ID: "d", RowCount: 2, ColumnCount: 3}}}).Seats
		require.Len(t, seats, 6)
		for _, s := range seats {
			assert.Equal(t, DefaultTier, s.Tier)
		}
		assert.Equal(t, "d-A-B3", seats[5].ID)
	})
}

func TestGenerate_PartialViewFeature(t *testing.T) {
	sec := stallsSection()
	sec.Rows[0].Features = []string{model.FeaturePartialView}

	seats := Generate(model.VenueLayout{Sections: []model.Section{sec}}).Seats
	require.NotEmpty(t, seats)
	for _, s := range seats {
		assert.Equal(t, model.StatusPartialView, s.Status)
		assert.Equal(t, model.StatusPartialView, s.BaseStatus)
		assert.Equal(t, []string{model.FeaturePartialView}, s.Features)
	}
}
