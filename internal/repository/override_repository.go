package repository

import (
	"context"
	"database/sql"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// OverrideRepo reads externally authored seat statuses from seat_overrides
// and treats committed cart seats as reservations.
type OverrideRepo struct {
	db *sql.DB
}

// NewOverrideRepo returns an OverrideRepo bound to the provided database.
func NewOverrideRepo(db *sql.DB) *OverrideRepo { return &OverrideRepo{db: db} }

// FetchOverrides assembles the override document of an event.  A non-empty
// sectionID restricts it to one section; overrides stored without a section
// are always included because their section is unknown.
func (r *OverrideRepo) FetchOverrides(ctx context.Context, eventID, sectionID string) (model.OverrideDocument, error) {
	doc := model.OverrideDocument{
		ReservedSeats: []model.SeatOverride{},
		BlockedSeats:  []model.SeatOverride{},
		SoldSeats:     []model.SeatOverride{},
	}

	const q = `SELECT seat_id, status, COALESCE(reason, ''), COALESCE(booking_id, '')
	           FROM seat_overrides
	           WHERE event_id = ? AND (? = '' OR section_id IS NULL OR section_id = ?)
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, eventID, sectionID, sectionID)
	if err != nil {
		return doc, err
	}
	defer rows.Close()
	for rows.Next() {
		var o model.SeatOverride
		if err := rows.Scan(&o.SeatID, &o.Status, &o.Reason, &o.BookingID); err != nil {
			return doc, err
		}
		switch model.Status(o.Status) {
		case model.StatusSold:
			doc.SoldSeats = append(doc.SoldSeats, o)
		case model.StatusReserved:
			doc.ReservedSeats = append(doc.ReservedSeats, o)
		case model.StatusBlocked:
			doc.BlockedSeats = append(doc.BlockedSeats, o)
		}
	}
	if err := rows.Err(); err != nil {
		return doc, err
	}

	const cq = `SELECT seat_id, commit_id FROM cart_seats
	            WHERE event_id = ? AND (? = '' OR section_id = ?)
	            ORDER BY id`
	crow, err := r.db.QueryContext(ctx, cq, eventID, sectionID, sectionID)
	if err != nil {
		return doc, err
	}
	defer crow.Close()
	for crow.Next() {
		o := model.SeatOverride{Status: string(model.StatusReserved), Reason: "cart"}
		if err := crow.Scan(&o.SeatID, &o.BookingID); err != nil {
			return doc, err
		}
		doc.ReservedSeats = append(doc.ReservedSeats, o)
	}
	return doc, crow.Err()
}
