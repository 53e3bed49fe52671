package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
)

var errReadOnly = errors.New("read-only seat map")

// SeatMapHandler serves generated seat maps without a session.  The response
// is safe to cache for a few seconds.
type SeatMapHandler struct {
	Layouts   LayoutFetcher
	Overrides OverrideFetcher
	Config    seatmap.Config
	Log       *zap.Logger
}

// NewSeatMapHandler wires the handler.  Both fetchers are required.
func NewSeatMapHandler(layouts LayoutFetcher, overrides OverrideFetcher, cfg seatmap.Config, log *zap.Logger) *SeatMapHandler {
	if layouts == nil || overrides == nil {
		panic("nil fetcher passed to NewSeatMapHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SeatMapHandler{Layouts: layouts, Overrides: overrides, Config: cfg, Log: log}
}

type seatMapResponse struct {
	EventID   string        `json:"event_id"`
	SectionID string        `json:"section_id,omitempty"`
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Seats     []model.Seat  `json:"seats"`
	Stats     seatmap.Stats `json:"stats"`
}

// Get handles GET /v1/events/:event_id/seatmap?section=.  It returns every
// seat of the event (or one section) with its resolved status.
func (h *SeatMapHandler) Get(c echo.Context) error {
	eventID := c.Param("event_id")
	if eventID == "" {
		return badRequest(c, "event_id is required")
	}
	key := seatmap.LoadKey{EventID: eventID, SectionID: c.QueryParam("section")}
	ctx := c.Request().Context()

	layout, err := h.Layouts.FetchLayout(ctx, eventID)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if !hasSection(layout, key.SectionID) {
		return writeError(c, h.Log, errSectionNotFound)
	}
	doc, err := h.Overrides.FetchOverrides(ctx, eventID, key.SectionID)
	if err != nil {
		return writeError(c, h.Log, err)
	}

	e := seatmap.New(h.Config, seatmap.CartFunc(func(context.Context, string, []model.CartSeat) error {
		return errReadOnly
	}), seatmap.WithLogger(h.Log))
	e.Begin(key)
	if err := e.Apply(key, layout, doc); err != nil {
		return writeError(c, h.Log, err)
	}
	w, ht := e.Size()
	return c.JSON(http.StatusOK, seatMapResponse{
		EventID:   eventID,
		SectionID: key.SectionID,
		Width:     w,
		Height:    ht,
		Seats:     e.Seats(),
		Stats:     e.Stats(),
	})
}
