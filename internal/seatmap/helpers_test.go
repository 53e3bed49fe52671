package seatmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// MockCart is a mock implementation of Cart
type MockCart struct {
	mock.Mock
}

func (m *MockCart) AddSeats(ctx context.Context, eventID string, seats []model.CartSeat) error {
	args := m.Called(ctx, eventID, seats)
	return args.Error(0)
}

var (
	vipTier  = model.Tier{ID: "vip", Name: "VIP", Price: 120, Color: "#FFD700"}
	mainTier = model.Tier{ID: "main", Name: "Main", Price: 50, Color: "#2196F3"}
)

// vipSection is two rows of five centre-numbered seats in block L.
func vipSection() model.Section {
	return model.Section{
		ID:          "vip",
		Name:        "VIP",
		Prefix:      "VIP",
		Numbering:   model.NumberingPerSection,
		RowCount:    2,
		ColumnCount: 5,
		Rows: []model.RowConfig{{
			Tier:        vipTier,
			BlockLetter: "L",
			Direction:   model.DirectionCenter,
		}},
	}
}

// stallsSection is a plain three by four grid, left numbered.
func stallsSection() model.Section {
	return model.Section{
		ID:          "stalls",
		Name:        "Stalls",
		Prefix:      "ST",
		Position:    model.Position{X: 0, Y: 300},
		Numbering:   model.NumberingPerSection,
		RowCount:    3,
		ColumnCount: 4,
		Rows: []model.RowConfig{{
			Tier:      mainTier,
			Direction: model.DirectionLeft,
		}},
	}
}

func testVenue() model.VenueLayout {
	return model.VenueLayout{
		EventID:  "ev1",
		Name:     "Main Hall",
		Sections: []model.Section{vipSection(), stallsSection()},
	}
}

func seatByID(t *testing.T, seats []model.Seat, id string) model.Seat {
	for _, s := range seats {
		if s.ID == id {
			return s
		}
	}
	t.Helper()
	t.Fatalf("seat %s not generated", id)
	return model.Seat{}
}
