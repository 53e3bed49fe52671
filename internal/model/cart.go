package model

// CartSeat is one line of the list handed to the cart on commit.
type CartSeat struct {
	SeatID      string  `json:"seatId"`
	AltSeatID   string  `json:"altSeatId,omitempty"`
	SectionID   string  `json:"sectionId"`
	SectionName string  `json:"sectionName"`
	Row         string  `json:"row"`
	Number      int     `json:"number"`
	TierID      string  `json:"tierId"`
	TierName    string  `json:"tierName"`
	Price       float64 `json:"price"`
}

// CartLine converts a selection snapshot into the outbound cart shape.
func (s SelectedSeat) CartLine() CartSeat {
	return CartSeat{
		SeatID:      s.SeatID,
		AltSeatID:   s.AltID,
		SectionID:   s.SectionID,
		SectionName: s.SectionName,
		Row:         s.Row,
		Number:      s.Number,
		TierID:      s.Tier.ID,
		TierName:    s.Tier.Name,
		Price:       s.Tier.Price,
	}
}

// Total sums the line prices.
func Total(seats []CartSeat) float64 {
	var t float64
	for _, s := range seats {
		t += s.Price
	}
	return t
}

// CartCommit is the record of a committed seat list for an event and customer.
type CartCommit struct {
	CommitID   string     `json:"commitId"`
	EventID    string     `json:"eventId"`
	CustomerID string     `json:"customerId"`
	Seats      []CartSeat `json:"seats"`
	Total      float64    `json:"total"`
}
