package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/middleware"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/service"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/session"
)

// SessionHandler drives interactive seat-map sessions.  Every engine call
// happens under the session lock; fetches run outside it so a slow database
// never blocks pointer events of the same session.
type SessionHandler struct {
	Store     *session.Store
	Layouts   LayoutFetcher
	Overrides OverrideFetcher
	Commits   CommitLister
	Log       *zap.Logger
}

// NewSessionHandler wires the handler.  commits may be nil, which disables
// the commit listing endpoint.
func NewSessionHandler(store *session.Store, layouts LayoutFetcher, overrides OverrideFetcher, commits CommitLister, log *zap.Logger) *SessionHandler {
	if store == nil || layouts == nil || overrides == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionHandler{Store: store, Layouts: layouts, Overrides: overrides, Commits: commits, Log: log}
}

type sessionResponse struct {
	ID        string                `json:"id"`
	EventID   string                `json:"event_id"`
	SectionID string                `json:"section_id,omitempty"`
	Loaded    bool                  `json:"loaded"`
	Width     float64               `json:"width"`
	Height    float64               `json:"height"`
	Viewport  seatmap.ViewportState `json:"viewport"`
	Seats     []model.Seat          `json:"seats,omitempty"`
	Selected  []model.SelectedSeat  `json:"selected"`
	Stats     seatmap.Stats         `json:"stats"`
	Notice    string                `json:"notice,omitempty"`
	ExpiresAt time.Time             `json:"expires_at"`
}

type pointerResponse struct {
	Hit      bool                 `json:"hit"`
	Seat     *model.Seat          `json:"seat,omitempty"`
	Selected []model.SelectedSeat `json:"selected"`
	Stats    seatmap.Stats        `json:"stats"`
	Notice   string               `json:"notice,omitempty"`
}

// view snapshots the engine.  Callers hold the session lock.
func (h *SessionHandler) view(s *session.Session, e *seatmap.Engine, withSeats bool) sessionResponse {
	key, loaded := e.Loaded()
	w, ht := e.Size()
	out := sessionResponse{
		ID:        s.ID,
		EventID:   s.EventID,
		SectionID: key.SectionID,
		Loaded:    loaded,
		Width:     w,
		Height:    ht,
		Viewport:  e.Viewport(),
		Selected:  selected(e),
		Stats:     e.Stats(),
		Notice:    notice(e),
		ExpiresAt: h.Store.ExpiresAt(s),
	}
	if withSeats {
		out.Seats = e.Seats()
	}
	return out
}

func selected(e *seatmap.Engine) []model.SelectedSeat {
	if sel := e.Selected(); sel != nil {
		return sel
	}
	return []model.SelectedSeat{}
}

func notice(e *seatmap.Engine) string {
	if err := e.Notice(); err != nil {
		return err.Error()
	}
	return ""
}

// load fetches the layout and overrides for key and applies them.  A load
// superseded by a concurrent section change fails with seatmap.ErrStaleLoad
// and leaves the newer load in charge.
func (h *SessionHandler) load(ctx context.Context, s *session.Session, key seatmap.LoadKey, refresh bool) error {
	layout, err := h.Layouts.FetchLayout(ctx, key.EventID)
	if err != nil {
		return fmt.Errorf("fetch layout: %w", err)
	}
	if !hasSection(layout, key.SectionID) {
		return errSectionNotFound
	}

	e := s.Lock()
	if !refresh {
		e.Begin(key)
	} else if key != e.Active() {
		s.Unlock()
		return seatmap.ErrStaleLoad
	}
	s.Unlock()

	doc, err := h.Overrides.FetchOverrides(ctx, key.EventID, key.SectionID)
	if err != nil {
		return fmt.Errorf("fetch overrides: %w", err)
	}

	e = s.Lock()
	defer s.Unlock()
	return e.Apply(key, layout, doc)
}

func (h *SessionHandler) session(c echo.Context) (*session.Session, error) {
	return h.Store.Get(c.Param("id"))
}

// respond locks s and writes its full or light view.
func (h *SessionHandler) respond(c echo.Context, status int, s *session.Session, withSeats bool) error {
	e := s.Lock()
	defer s.Unlock()
	return c.JSON(status, h.view(s, e, withSeats))
}

// Create handles POST /v1/events/:event_id/sessions.  The body may carry an
// initial section and the client viewport size; the layout is loaded before
// the session is returned.
func (h *SessionHandler) Create(c echo.Context) error {
	eventID := c.Param("event_id")
	var body struct {
		SectionID      string  `json:"section_id"`
		ViewportWidth  float64 `json:"viewport_width"`
		ViewportHeight float64 `json:"viewport_height"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.ViewportWidth < 0 || body.ViewportHeight < 0 {
		return badRequest(c, "viewport size must not be negative")
	}

	s := h.Store.Create(eventID)
	if body.ViewportWidth > 0 && body.ViewportHeight > 0 {
		e := s.Lock()
		e.Resize(body.ViewportWidth, body.ViewportHeight)
		s.Unlock()
	}
	key := seatmap.LoadKey{EventID: eventID, SectionID: body.SectionID}
	if err := h.load(c.Request().Context(), s, key, false); err != nil {
		_ = h.Store.Delete(s.ID)
		return writeError(c, h.Log, err)
	}
	h.Log.Info("seat-map session started",
		zap.String("session_id", s.ID), zap.String("event_id", eventID), zap.String("section_id", body.SectionID))
	return h.respond(c, http.StatusCreated, s, true)
}

// Get handles GET /v1/sessions/:id.  ?seats=false omits the seat list.
func (h *SessionHandler) Get(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return h.respond(c, http.StatusOK, s, c.QueryParam("seats") != "false")
}

// Delete handles DELETE /v1/sessions/:id.
func (h *SessionHandler) Delete(c echo.Context) error {
	if err := h.Store.Delete(c.Param("id")); err != nil {
		return writeError(c, h.Log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetSection handles PUT /v1/sessions/:id/section.  An empty section_id
// switches to the whole venue.  Switching clears the selection.
func (h *SessionHandler) SetSection(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var body struct {
		SectionID string `json:"section_id"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	key := seatmap.LoadKey{EventID: s.EventID, SectionID: body.SectionID}
	if err := h.load(c.Request().Context(), s, key, false); err != nil {
		return writeError(c, h.Log, err)
	}
	return h.respond(c, http.StatusOK, s, true)
}

// Refresh handles POST /v1/sessions/:id/refresh.  It reloads overrides for
// the active key; selected seats that were taken meanwhile are dropped.
func (h *SessionHandler) Refresh(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	e := s.Lock()
	key := e.Active()
	s.Unlock()
	if key.EventID == "" {
		return writeError(c, h.Log, seatmap.ErrNoLayout)
	}
	if err := h.load(c.Request().Context(), s, key, true); err != nil {
		return writeError(c, h.Log, err)
	}
	return h.respond(c, http.StatusOK, s, true)
}

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pointer handles POST /v1/sessions/:id/pointer: a click at screen (x, y).
// A hit toggles the seat; a miss changes nothing.
func (h *SessionHandler) Pointer(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var p point
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid request body")
	}
	e := s.Lock()
	defer s.Unlock()
	if _, ok := e.Loaded(); !ok {
		return writeError(c, h.Log, seatmap.ErrNoLayout)
	}
	seat, hit, err := e.Click(p.X, p.Y)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	out := pointerResponse{Hit: hit, Selected: selected(e), Stats: e.Stats(), Notice: notice(e)}
	if hit {
		out.Seat = &seat
	}
	return c.JSON(http.StatusOK, out)
}

// Hover handles POST /v1/sessions/:id/hover.  It reports the seat under
// the pointer without changing anything.
func (h *SessionHandler) Hover(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var p point
	if err := c.Bind(&p); err != nil {
		return badRequest(c, "invalid request body")
	}
	e := s.Lock()
	defer s.Unlock()
	seat, hit := e.SeatAt(p.X, p.Y)
	out := echo.Map{"hit": hit}
	if hit {
		out["seat"] = seat
	}
	return c.JSON(http.StatusOK, out)
}

// Zoom handles POST /v1/sessions/:id/zoom.  The scale is multiplied by
// factor around screen point (x, y), clamped to the configured limits.
func (h *SessionHandler) Zoom(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var body struct {
		Factor float64 `json:"factor"`
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Factor <= 0 {
		return badRequest(c, "factor must be positive")
	}
	e := s.Lock()
	defer s.Unlock()
	e.Zoom(body.Factor, body.X, body.Y)
	return c.JSON(http.StatusOK, echo.Map{"viewport": e.Viewport()})
}

// Pan handles POST /v1/sessions/:id/pan.
func (h *SessionHandler) Pan(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var body struct {
		DX float64 `json:"dx"`
		DY float64 `json:"dy"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	e := s.Lock()
	defer s.Unlock()
	e.Pan(body.DX, body.DY)
	return c.JSON(http.StatusOK, echo.Map{"viewport": e.Viewport()})
}

// Resize handles POST /v1/sessions/:id/resize.  fit=true also refits the
// content into the new frame.
func (h *SessionHandler) Resize(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	var body struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
		Fit    bool    `json:"fit"`
	}
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Width <= 0 || body.Height <= 0 {
		return badRequest(c, "width and height must be positive")
	}
	e := s.Lock()
	defer s.Unlock()
	e.Resize(body.Width, body.Height)
	if body.Fit {
		e.Fit()
	}
	return c.JSON(http.StatusOK, echo.Map{"viewport": e.Viewport()})
}

// SelectSeat handles POST /v1/sessions/:id/seats/:seat_id.
func (h *SessionHandler) SelectSeat(c echo.Context) error {
	return h.mutateSeat(c, (*seatmap.Engine).Select)
}

// DeselectSeat handles DELETE /v1/sessions/:id/seats/:seat_id.
func (h *SessionHandler) DeselectSeat(c echo.Context) error {
	return h.mutateSeat(c, (*seatmap.Engine).Deselect)
}

func (h *SessionHandler) mutateSeat(c echo.Context, op func(*seatmap.Engine, string) error) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	seatID := c.Param("seat_id")
	e := s.Lock()
	defer s.Unlock()
	if err := op(e, seatID); err != nil {
		return writeError(c, h.Log, err)
	}
	seat, _ := e.Seat(seatID)
	return c.JSON(http.StatusOK, pointerResponse{
		Hit:      true,
		Seat:     &seat,
		Selected: selected(e),
		Stats:    e.Stats(),
		Notice:   notice(e),
	})
}

// ClearSelection handles DELETE /v1/sessions/:id/selection.
func (h *SessionHandler) ClearSelection(c echo.Context) error {
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	e := s.Lock()
	e.ClearSelection()
	s.Unlock()
	return h.respond(c, http.StatusOK, s, false)
}

// Commit handles POST /v1/sessions/:id/commit.  It requires JWTAuth; the
// token subject becomes the customer of the commit.  Rejected commits keep
// the selection and answer 409 with the conflicting seat ids.
func (h *SessionHandler) Commit(c echo.Context) error {
	customer := middleware.CustomerID(c)
	if customer == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	s, err := h.session(c)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	commitID := uuid.NewString()
	ctx := service.WithCommitID(service.WithCustomer(c.Request().Context(), customer), commitID)

	e := s.Lock()
	defer s.Unlock()
	lines, err := e.Commit(ctx)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"commit_id": commitID,
		"event_id":  s.EventID,
		"seats":     lines,
		"total":     model.Total(lines),
	})
}

// ListCommits handles GET /v1/events/:event_id/commits for the
// authenticated customer.
func (h *SessionHandler) ListCommits(c echo.Context) error {
	if h.Commits == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "commit history not available"})
	}
	customer := middleware.CustomerID(c)
	if customer == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	commits, err := h.Commits.ListByCustomer(c.Request().Context(), c.Param("event_id"), customer)
	if err != nil {
		return writeError(c, h.Log, err)
	}
	if commits == nil {
		commits = []model.CartCommit{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": commits})
}
