package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// LayoutRepo stores one VenueLayout JSON document per event in the
// venue_layouts table.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo returns a LayoutRepo bound to the provided database.
func NewLayoutRepo(db *sql.DB) *LayoutRepo { return &LayoutRepo{db: db} }

// FetchLayout loads and decodes the layout document of an event.
func (r *LayoutRepo) FetchLayout(ctx context.Context, eventID string) (model.VenueLayout, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM venue_layouts WHERE event_id = ?`, eventID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.VenueLayout{}, ErrLayoutNotFound
	}
	if err != nil {
		return model.VenueLayout{}, err
	}
	var layout model.VenueLayout
	if err := json.Unmarshal(raw, &layout); err != nil {
		return model.VenueLayout{}, fmt.Errorf("decode layout %s: %w", eventID, err)
	}
	if layout.EventID == "" {
		layout.EventID = eventID
	}
	return layout, nil
}

// Save inserts or replaces the layout document of layout.EventID.
func (r *LayoutRepo) Save(ctx context.Context, layout model.VenueLayout) error {
	if layout.EventID == "" {
		return errors.New("layout without event id")
	}
	doc, err := json.Marshal(layout)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO venue_layouts (event_id, name, document) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE name = VALUES(name), document = VALUES(document)`,
		layout.EventID, layout.Name, doc)
	return err
}
