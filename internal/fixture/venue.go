package fixture

import "github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"

// DemoEventID is the event served by the fixture source out of the box.
const DemoEventID = "demo"

var (
	TierPremium    = model.Tier{ID: "premium", Name: "Premium", Price: 95, Color: "#8E24AA"}
	TierStalls     = model.Tier{ID: "stalls", Name: "Stalls", Price: 60, Color: "#1E88E5"}
	TierBalcony    = model.Tier{ID: "balcony", Name: "Balcony", Price: 40, Color: "#43A047"}
	TierRestricted = model.Tier{ID: "restricted", Name: "Restricted View", Price: 25, Color: "#FB8C00"}
)

// DemoVenue returns a three-section hall:
//
//	stalls   per-section rows, three blocks with centre numbering in the middle
//	balcony  continuous rows skipping I, with a restricted-view back row
//	boxes    continuous rows, four seats either side of a wide aisle
func DemoVenue(eventID string) model.VenueLayout {
	return model.VenueLayout{
		EventID: eventID,
		Name:    "Grand Hall",
		Sections: []model.Section{
			{
				ID:          "stalls",
				Name:        "Stalls",
				Prefix:      "STL",
				Position:    model.Position{X: 600, Y: 160},
				Numbering:   model.NumberingPerSection,
				RowCount:    12,
				ColumnCount: 28,
				Rows: []model.RowConfig{
					{FromRow: model.Int(1), ToRow: model.Int(4), FromColumn: model.Int(9), ToColumn: model.Int(20),
						Tier: TierPremium, BlockLetter: "C", Direction: model.DirectionCenter,
						GapAfterColumn: model.Int(14), GapSize: 1},
					{FromColumn: model.Int(1), ToColumn: model.Int(8), Tier: TierStalls, BlockLetter: "L", Direction: model.DirectionRight},
					{FromColumn: model.Int(9), ToColumn: model.Int(20), Tier: TierStalls, BlockLetter: "C", Direction: model.DirectionCenter},
					{FromColumn: model.Int(21), ToColumn: model.Int(28), Tier: TierStalls, BlockLetter: "R", Direction: model.DirectionLeft},
				},
			},
			{
				ID:          "balcony",
				Name:        "Balcony",
				Prefix:      "BAL",
				Position:    model.Position{X: 600, Y: 640},
				Numbering:   model.NumberingContinuous,
				SkipLetters: []string{"I"},
				RowCount:    10,
				ColumnCount: 30,
				Rows: []model.RowConfig{
					{FromRow: model.Int(1), ToRow: model.Int(9), Tier: TierBalcony, Direction: model.DirectionLeft},
					{FromRow: model.Int(10), ToRow: model.Int(10), FromColumn: model.Int(3), ToColumn: model.Int(28),
						Tier: TierRestricted, Direction: model.DirectionLeft, Features: []string{model.FeaturePartialView}},
				},
			},
			{
				ID:          "boxes",
				Name:        "Boxes",
				Prefix:      "BOX",
				Position:    model.Position{X: 600, Y: 40},
				Numbering:   model.NumberingContinuous,
				RowCount:    2,
				ColumnCount: 8,
				Rows: []model.RowConfig{
					{FromColumn: model.Int(1), ToColumn: model.Int(8), Tier: TierPremium,
						GapAfterColumn: model.Int(4), GapSize: 16},
				},
			},
		},
	}
}
