package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// CartRepo persists committed seat lists into cart_commits and cart_seats.
// cart_seats has a unique key on (event_id, seat_id), so one seat can sit
// in at most one cart per event.
type CartRepo struct {
	db *sql.DB
}

// NewCartRepo returns a CartRepo bound to the provided database.
func NewCartRepo(db *sql.DB) *CartRepo { return &CartRepo{db: db} }

// AddSeats stores a commit inside one transaction.  Seats that carry a
// SOLD, RESERVED or BLOCKED override (under either id format) or already
// belong to a cart make the whole commit fail with *seatmap.ConflictError.
func (r *CartRepo) AddSeats(ctx context.Context, commit model.CartCommit) error {
	if len(commit.Seats) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	conflicts, err := r.conflictsTx(ctx, tx, commit)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &seatmap.ConflictError{SeatIDs: conflicts}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cart_commits (id, event_id, customer_id, total) VALUES (?, ?, ?, ?)`,
		commit.CommitID, commit.EventID, commit.CustomerID, commit.Total); err != nil {
		return err
	}

	query := `INSERT INTO cart_seats (commit_id, event_id, seat_id, section_id, section_name, row_label, seat_number, tier_id, price) VALUES `
	args := make([]interface{}, 0, len(commit.Seats)*9)
	for i, s := range commit.Seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
		args = append(args, commit.CommitID, commit.EventID, s.SeatID, s.SectionID, s.SectionName, s.Row, s.Number, s.TierID, s.Price)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		// Lost a race with a concurrent commit on the unique key.
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return &seatmap.ConflictError{SeatIDs: seatIDs(commit.Seats), Message: "seats taken by a concurrent commit"}
		}
		return err
	}
	return tx.Commit()
}

// conflictsTx returns the primary ids of seats in the commit that are no
// longer sellable.  Matching rows are locked until the transaction ends.
func (r *CartRepo) conflictsTx(ctx context.Context, tx *sql.Tx, commit model.CartCommit) ([]string, error) {
	primary := make(map[string]string, len(commit.Seats)*2)
	lookup := make([]interface{}, 0, len(commit.Seats)*2)
	for _, s := range commit.Seats {
		primary[s.SeatID] = s.SeatID
		lookup = append(lookup, s.SeatID)
		if s.AltSeatID != "" {
			primary[s.AltSeatID] = s.SeatID
			lookup = append(lookup, s.AltSeatID)
		}
	}
	in := placeholders(len(lookup))

	taken := map[string]bool{}
	collect := func(query string) error {
		args := append([]interface{}{commit.EventID}, lookup...)
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			taken[primary[id]] = true
		}
		return rows.Err()
	}
	if err := collect(`SELECT seat_id FROM seat_overrides WHERE event_id = ? AND seat_id IN (` + in + `) FOR UPDATE`); err != nil {
		return nil, err
	}
	if err := collect(`SELECT seat_id FROM cart_seats WHERE event_id = ? AND seat_id IN (` + in + `) FOR UPDATE`); err != nil {
		return nil, err
	}

	var out []string
	for _, s := range commit.Seats {
		if taken[s.SeatID] {
			out = append(out, s.SeatID)
		}
	}
	return out, nil
}

// ListByCustomer returns the commits of a customer for an event, newest
// first, with their seat lines.
func (r *CartRepo) ListByCustomer(ctx context.Context, eventID, customerID string) ([]model.CartCommit, error) {
	const q = `SELECT c.id, c.total, s.seat_id, s.section_id, s.section_name, s.row_label, s.seat_number, s.tier_id, s.price
	           FROM cart_commits c JOIN cart_seats s ON s.commit_id = c.id
	           WHERE c.event_id = ? AND c.customer_id = ?
	           ORDER BY c.created_at DESC, c.id, s.id`
	rows, err := r.db.QueryContext(ctx, q, eventID, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CartCommit
	for rows.Next() {
		var (
			id    string
			total float64
			line  model.CartSeat
		)
		if err := rows.Scan(&id, &total, &line.SeatID, &line.SectionID, &line.SectionName, &line.Row, &line.Number, &line.TierID, &line.Price); err != nil {
			return nil, err
		}
		if n := len(out); n == 0 || out[n-1].CommitID != id {
			out = append(out, model.CartCommit{CommitID: id, EventID: eventID, CustomerID: customerID, Total: total})
		}
		last := &out[len(out)-1]
		last.Seats = append(last.Seats, line)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func seatIDs(seats []model.CartSeat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.SeatID)
	}
	return out
}
