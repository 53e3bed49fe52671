package fixture

import (
	"context"
	"sort"
	"sync"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/repository"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
)

// Source serves venue layouts and seeded overrides from memory, and keeps
// committed carts so later loads show those seats as reserved.  It stands in
// for MySQL when no database is configured.  Safe for concurrent use.
type Source struct {
	seed  int64
	rates Rates

	mu      sync.RWMutex
	venues  map[string]model.VenueLayout
	events  map[string]*event
	commits []model.CartCommit
}

type event struct {
	seats     []model.Seat
	byID      map[string]*model.Seat
	doc       model.OverrideDocument
	overrides seatmap.Overrides
	committed map[string]model.SeatOverride
}

// NewSource returns a Source holding the demo venue under DemoEventID.
func NewSource(seed int64, rates Rates) *Source {
	s := &Source{
		seed:   seed,
		rates:  rates,
		venues: map[string]model.VenueLayout{},
		events: map[string]*event{},
	}
	s.Put(DemoVenue(DemoEventID))
	return s
}

// Put registers or replaces a venue layout, keyed by its EventID.
func (s *Source) Put(layout model.VenueLayout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.venues[layout.EventID] = layout
	delete(s.events, layout.EventID)
}

// FetchLayout returns the layout document of an event.
func (s *Source) FetchLayout(_ context.Context, eventID string) (model.VenueLayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	layout, ok := s.venues[eventID]
	if !ok {
		return model.VenueLayout{}, repository.ErrLayoutNotFound
	}
	return layout, nil
}

// FetchOverrides returns the seeded overrides of an event plus the seats of
// committed carts as reservations.  A non-empty sectionID restricts the
// document to that section.
func (s *Source) FetchOverrides(_ context.Context, eventID, sectionID string) (model.OverrideDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.eventLocked(eventID)
	if err != nil {
		return model.OverrideDocument{}, err
	}
	inSection := func(o model.SeatOverride) bool {
		if sectionID == "" {
			return true
		}
		seat := ev.byID[o.SeatID]
		return seat != nil && seat.SectionID == sectionID
	}
	out := model.OverrideDocument{
		SoldSeats:     filter(ev.doc.SoldSeats, inSection),
		BlockedSeats:  filter(ev.doc.BlockedSeats, inSection),
		ReservedSeats: filter(ev.doc.ReservedSeats, inSection),
	}
	ids := make([]string, 0, len(ev.committed))
	for id := range ev.committed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if o := ev.committed[id]; inSection(o) {
			out.ReservedSeats = append(out.ReservedSeats, o)
		}
	}
	return out, nil
}

// AddSeats records a committed cart.  It rejects the whole commit with a
// *seatmap.ConflictError when any seat is unknown, overridden, or already
// committed.
func (s *Source) AddSeats(_ context.Context, commit model.CartCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, err := s.eventLocked(commit.EventID)
	if err != nil {
		return err
	}
	var conflicts []string
	for _, line := range commit.Seats {
		seat := ev.byID[line.SeatID]
		if seat == nil {
			conflicts = append(conflicts, line.SeatID)
			continue
		}
		if _, _, taken := ev.overrides.Override(seat); taken {
			conflicts = append(conflicts, line.SeatID)
			continue
		}
		if _, taken := ev.committed[seat.ID]; taken {
			conflicts = append(conflicts, line.SeatID)
		}
	}
	if len(conflicts) > 0 {
		return &seatmap.ConflictError{SeatIDs: conflicts}
	}
	for _, line := range commit.Seats {
		id := ev.byID[line.SeatID].ID
		ev.committed[id] = model.SeatOverride{
			SeatID:    id,
			Status:    string(model.StatusReserved),
			Reason:    "cart",
			BookingID: commit.CommitID,
		}
	}
	s.commits = append(s.commits, commit)
	return nil
}

// Commits returns every accepted commit in order.
func (s *Source) Commits() []model.CartCommit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CartCommit(nil), s.commits...)
}

// ListByCustomer returns the commits of a customer for an event, newest
// first.
func (s *Source) ListByCustomer(_ context.Context, eventID, customerID string) ([]model.CartCommit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.CartCommit
	for i := len(s.commits) - 1; i >= 0; i-- {
		if c := s.commits[i]; c.EventID == eventID && c.CustomerID == customerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Source) eventLocked(eventID string) (*event, error) {
	if ev, ok := s.events[eventID]; ok {
		return ev, nil
	}
	layout, ok := s.venues[eventID]
	if !ok {
		return nil, repository.ErrLayoutNotFound
	}
	seats := seatmap.Generate(layout).Seats
	ev := &event{
		seats:     seats,
		byID:      make(map[string]*model.Seat, len(seats)*2),
		doc:       Overrides(seats, s.seed, s.rates),
		committed: map[string]model.SeatOverride{},
	}
	for i := range seats {
		ev.byID[seats[i].ID] = &seats[i]
	}
	for i := range seats {
		if _, dup := ev.byID[seats[i].AltID]; !dup && seats[i].AltID != "" {
			ev.byID[seats[i].AltID] = &seats[i]
		}
	}
	ev.overrides = seatmap.NewOverrides(ev.doc)
	s.events[eventID] = ev
	return ev, nil
}

func filter(list []model.SeatOverride, keep func(model.SeatOverride) bool) []model.SeatOverride {
	out := []model.SeatOverride{}
	for _, o := range list {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
