// Package handler exposes the seat-map engine over HTTP.  Responses are JSON;
// the client renders seats and sends pointer, zoom and pan events back.
package handler

import (
	"context"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// LayoutFetcher loads the layout document of an event.
type LayoutFetcher interface {
	FetchLayout(ctx context.Context, eventID string) (model.VenueLayout, error)
}

// OverrideFetcher loads the status overrides of an event, optionally for a
// single section.
type OverrideFetcher interface {
	FetchOverrides(ctx context.Context, eventID, sectionID string) (model.OverrideDocument, error)
}

// CommitLister lists a customer's committed carts.
type CommitLister interface {
	ListByCustomer(ctx context.Context, eventID, customerID string) ([]model.CartCommit, error)
}

func hasSection(layout model.VenueLayout, sectionID string) bool {
	if sectionID == "" {
		return true
	}
	for _, s := range layout.Sections {
		if s.ID == sectionID {
			return true
		}
	}
	return false
}
