// Package fixture provides a demo venue and seeded, reproducible override
// documents for local runs and tests.  The engine never depends on it.
package fixture

import (
	"math/rand"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// Rates are the fractions of seats marked sold, reserved and blocked.  They
// are applied in that order to one random draw per seat, so their sum
// should stay below 1.
type Rates struct {
	Sold     float64
	Reserved float64
	Blocked  float64
}

// DefaultRates gives a plausibly busy house.
var DefaultRates = Rates{Sold: 0.25, Reserved: 0.05, Blocked: 0.02}

// Overrides marks a seeded share of seats as sold, reserved or blocked.
// The same seats, seed and rates always produce the same document.  Every
// fourth override of a continuous-section seat is written in the seat's
// alternate id format, the way mixed upstream feeds do.  Per-section seats
// always use their own id: their alternate id drops the block letter and
// would match the same seat number in every block of the row.
func Overrides(seats []model.Seat, seed int64, rates Rates) model.OverrideDocument {
	rng := rand.New(rand.NewSource(seed))
	doc := model.OverrideDocument{
		ReservedSeats: []model.SeatOverride{},
		BlockedSeats:  []model.SeatOverride{},
		SoldSeats:     []model.SeatOverride{},
	}
	n := 0
	for i := range seats {
		s := &seats[i]
		draw := rng.Float64()
		id := s.ID
		if n%4 == 3 && s.Scheme == model.NumberingContinuous && s.AltID != "" {
			id = s.AltID
		}
		switch {
		case draw < rates.Sold:
			doc.SoldSeats = append(doc.SoldSeats, model.SeatOverride{SeatID: id, Status: string(model.StatusSold)})
		case draw < rates.Sold+rates.Reserved:
			doc.ReservedSeats = append(doc.ReservedSeats, model.SeatOverride{SeatID: id, Status: string(model.StatusReserved)})
		case draw < rates.Sold+rates.Reserved+rates.Blocked:
			doc.BlockedSeats = append(doc.BlockedSeats, model.SeatOverride{
				SeatID: id, Status: string(model.StatusBlocked), Reason: "house",
			})
		default:
			continue
		}
		n++
	}
	return doc
}
