package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/queue"
)

// ErrNoCustomer is returned when a commit reaches the cart without a
// customer identity in its context.
var ErrNoCustomer = errors.New("commit without customer")

// CartStore persists a commit atomically.  Implementations reject the whole
// commit with *seatmap.ConflictError when any seat is taken.
type CartStore interface {
	AddSeats(ctx context.Context, commit model.CartCommit) error
}

// EventPublisher announces an accepted commit.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.SeatsCommittedEvent) error
}

type customerKey struct{}
type commitKey struct{}

// WithCustomer attaches the authenticated customer id to ctx.
func WithCustomer(ctx context.Context, customerID string) context.Context {
	return context.WithValue(ctx, customerKey{}, customerID)
}

// CustomerFrom returns the customer id stored by WithCustomer.
func CustomerFrom(ctx context.Context) string {
	id, _ := ctx.Value(customerKey{}).(string)
	return id
}

// WithCommitID fixes the id the next commit is stored under, so the caller
// can report it.  Without it CartService generates one.
func WithCommitID(ctx context.Context, commitID string) context.Context {
	return context.WithValue(ctx, commitKey{}, commitID)
}

func commitIDFrom(ctx context.Context) string {
	if id, _ := ctx.Value(commitKey{}).(string); id != "" {
		return id
	}
	return uuid.NewString()
}

// CartService implements seatmap.Cart on top of a CartStore.  Successful
// commits are published; publish failures are logged and do not fail the
// commit, the rows are already stored.
type CartService struct {
	store CartStore
	pub   EventPublisher
	log   *zap.Logger
	now   func() time.Time
}

// NewCartService wires the cart.  pub may be nil to disable events.
func NewCartService(store CartStore, pub EventPublisher, log *zap.Logger) *CartService {
	if store == nil {
		panic("NewCartService: nil store")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CartService{store: store, pub: pub, log: log, now: time.Now}
}

// AddSeats stores the seats as one commit for the customer found in ctx.
func (s *CartService) AddSeats(ctx context.Context, eventID string, seats []model.CartSeat) error {
	customer := CustomerFrom(ctx)
	if customer == "" {
		return ErrNoCustomer
	}
	commit := model.CartCommit{
		CommitID:   commitIDFrom(ctx),
		EventID:    eventID,
		CustomerID: customer,
		Seats:      seats,
		Total:      model.Total(seats),
	}
	if err := s.store.AddSeats(ctx, commit); err != nil {
		return fmt.Errorf("store commit %s: %w", commit.CommitID, err)
	}
	log := s.log.With(
		zap.String("commit_id", commit.CommitID),
		zap.String("event_id", eventID),
		zap.String("customer_id", customer),
	)
	log.Info("cart commit stored", zap.Int("seats", len(seats)), zap.Float64("total", commit.Total))

	if s.pub == nil {
		return nil
	}
	if err := s.pub.Publish(ctx, queue.NewSeatsCommittedEvent(commit, s.now())); err != nil {
		log.Warn("publish commit event failed", zap.Error(err))
	}
	return nil
}
