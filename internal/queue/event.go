// Package queue defines the message payloads exchanged over RabbitMQ and
// the background consumer that records committed carts.
package queue

import (
	"time"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// DefaultCommitQueue receives one SeatsCommittedEvent per accepted commit.
const DefaultCommitQueue = "seats.committed"

// SeatsCommittedEvent is published after a cart commit is stored.  It carries
// enough for downstream consumers to log, notify or start payment without
// querying the primary database.
type SeatsCommittedEvent struct {
	CommitID    string           `json:"commit_id"`
	EventID     string           `json:"event_id"`
	CustomerID  string           `json:"customer_id"`
	Seats       []model.CartSeat `json:"seats"`
	Total       float64          `json:"total"`
	CommittedAt string           `json:"committed_at"`
}

// NewSeatsCommittedEvent builds the event for a stored commit.
func NewSeatsCommittedEvent(c model.CartCommit, at time.Time) SeatsCommittedEvent {
	return SeatsCommittedEvent{
		CommitID:    c.CommitID,
		EventID:     c.EventID,
		CustomerID:  c.CustomerID,
		Seats:       c.Seats,
		Total:       c.Total,
		CommittedAt: at.UTC().Format(time.RFC3339),
	}
}
