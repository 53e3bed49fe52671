package seatmap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
)

// DefaultNoticeDuration is how long a transient warning stays visible.
const DefaultNoticeDuration = 3 * time.Second

// Config tunes an Engine.  Zero values select the package defaults.
type Config struct {
	MaxSelection   int
	NoticeDuration time.Duration
	MinScale       float64
	MaxScale       float64
	CellSize       float64
}

// DefaultConfig returns the stock engine settings.
func DefaultConfig() Config {
	return Config{
		MaxSelection:   DefaultMaxSelection,
		NoticeDuration: DefaultNoticeDuration,
		MinScale:       DefaultMinScale,
		MaxScale:       DefaultMaxScale,
		CellSize:       DefaultCellSize,
	}
}

// LoadKey identifies what a load request is for.  An empty SectionID means
// the whole venue.
type LoadKey struct {
	EventID   string
	SectionID string
}

// Stats summarises the loaded seats.
type Stats struct {
	Total         int                  `json:"total"`
	ByStatus      map[model.Status]int `json:"byStatus"`
	Selected      int                  `json:"selected"`
	MaxSelection  int                  `json:"maxSelection"`
	SelectedTotal float64              `json:"selectedTotal"`
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock replaces time.Now, mainly for tests of transient notices.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

type notice struct {
	err   error
	until time.Time
}

// Engine owns the seats of one loaded layout, their spatial index, the
// viewport and the selection.  Renderers draw what it exposes and forward
// input events to it.  An Engine is not safe for concurrent use; callers
// serialise access.
type Engine struct {
	cfg  Config
	cart Cart
	gen  *Generator
	log  *zap.Logger
	now  func() time.Time

	active    LoadKey
	loaded    bool
	loadedKey LoadKey

	seats     []model.Seat
	byID      map[string][]int // slots per id; aisle-split rows can repeat an id
	index     *SpatialIndex
	width     float64
	height    float64
	viewport  *Viewport
	selection *Selection
	notice    notice
}

// New returns an Engine that commits to cart.  It panics when cart is nil.
func New(cfg Config, cart Cart, opts ...Option) *Engine {
	if cart == nil {
		panic("seatmap: nil cart passed to New")
	}
	def := DefaultConfig()
	if cfg.MaxSelection <= 0 {
		cfg.MaxSelection = def.MaxSelection
	}
	if cfg.NoticeDuration <= 0 {
		cfg.NoticeDuration = def.NoticeDuration
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = def.CellSize
	}
	e := &Engine{
		cfg:       cfg,
		cart:      cart,
		log:       zap.NewNop(),
		now:       time.Now,
		byID:      map[string][]int{},
		viewport:  NewViewport(cfg.MinScale, cfg.MaxScale),
		selection: NewSelection(cfg.MaxSelection),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.gen = NewGenerator(e.log)
	return e
}

// Begin marks key as the active load.  Switching to a different key releases
// the current selection through the normal restore path; the seats of the
// previous layout stay visible until Apply succeeds.
func (e *Engine) Begin(key LoadKey) {
	if e.loaded && key != e.loadedKey {
		e.ClearSelection()
	}
	e.active = key
}

// Active returns the key of the most recent Begin.
func (e *Engine) Active() LoadKey { return e.active }

// Apply replaces the seat list with a fresh generation pass for key.  Results
// for a key that is no longer active are discarded with ErrStaleLoad.  When
// key is the one already loaded (a refresh) selections survive unless an
// override now takes the seat.
func (e *Engine) Apply(key LoadKey, venue model.VenueLayout, doc model.OverrideDocument) error {
	if key != e.active {
		e.log.Debug("discarding stale layout load",
			zap.String("event", key.EventID), zap.String("section", key.SectionID),
			zap.String("active_section", e.active.SectionID))
		return ErrStaleLoad
	}

	var layout Layout
	if key.SectionID != "" {
		layout = e.gen.GenerateSection(venue, key.SectionID)
	} else {
		layout = e.gen.Generate(venue)
	}

	refresh := e.loaded && key == e.loadedKey
	var carry []layoutCell
	if refresh {
		for _, slot := range e.selection.Slots() {
			carry = append(carry, cellOf(&e.seats[slot]))
		}
	} else {
		e.ClearSelection()
	}

	overrides := NewOverrides(doc)
	byID := make(map[string][]int, len(layout.Seats))
	byCell := make(map[layoutCell]int, len(layout.Seats))
	for i := range layout.Seats {
		s := &layout.Seats[i]
		s.Status = Resolve(s, overrides, nil)
		if len(byID[s.ID]) == 1 {
			e.log.Debug("seat id shared by several seats", zap.String("seat", s.ID))
		}
		byID[s.ID] = append(byID[s.ID], i)
		byCell[cellOf(s)] = i
	}

	sel := NewSelection(e.cfg.MaxSelection)
	for _, c := range carry {
		i, ok := byCell[c]
		if !ok || !layout.Seats[i].Status.Selectable() {
			e.log.Info("selection dropped on refresh",
				zap.String("section", c.section), zap.Int("row", c.row), zap.Int("column", c.col))
			continue
		}
		s := &layout.Seats[i]
		sel.adopt(i, s, s.Status)
		s.Status = model.StatusSelected
	}

	e.seats = layout.Seats
	e.byID = byID
	e.width, e.height = layout.Width, layout.Height
	e.index = BuildIndex(e.seats, e.cfg.CellSize)
	e.selection = sel
	e.viewport.SetContent(layout.Width, layout.Height)
	if refresh {
		e.viewport.EnforceBounds()
	} else {
		e.viewport.Fit()
	}
	e.loaded = true
	e.loadedKey = key

	e.log.Debug("layout applied",
		zap.String("event", key.EventID), zap.String("section", key.SectionID),
		zap.Int("seats", len(e.seats)), zap.Int("overrides", doc.Len()),
		zap.Int("selected", sel.Len()))
	return nil
}

// Loaded reports whether a layout has been applied, and for which key.
func (e *Engine) Loaded() (LoadKey, bool) { return e.loadedKey, e.loaded }

// Size returns the drawing surface of the loaded layout.
func (e *Engine) Size() (float64, float64) { return e.width, e.height }

// Seats returns a copy of every seat in generation order.
func (e *Engine) Seats() []model.Seat {
	return append([]model.Seat(nil), e.seats...)
}

// Seat returns a copy of the seat with the given id.  When several seats
// share the id, the first in generation order is returned.
func (e *Engine) Seat(id string) (model.Seat, bool) {
	slots := e.byID[id]
	if len(slots) == 0 {
		return model.Seat{}, false
	}
	return e.seats[slots[0]], true
}

// find returns the first slot holding id whose seat satisfies want, falling
// back to the first slot holding id at all.  It returns -1 for unknown ids.
func (e *Engine) find(id string, want func(*model.Seat) bool) int {
	slots := e.byID[id]
	if len(slots) == 0 {
		return -1
	}
	for _, i := range slots {
		if want(&e.seats[i]) {
			return i
		}
	}
	return slots[0]
}

func (e *Engine) slot(i int) *model.Seat {
	if i < 0 || i >= len(e.seats) {
		return nil
	}
	return &e.seats[i]
}

func (e *Engine) seatAt(sx, sy float64) int {
	wx, wy := e.viewport.ScreenToWorld(sx, sy)
	return e.index.Query(wx, wy)
}

// SeatAt hit-tests a screen point.
func (e *Engine) SeatAt(sx, sy float64) (model.Seat, bool) {
	i := e.seatAt(sx, sy)
	if i < 0 {
		return model.Seat{}, false
	}
	return e.seats[i], true
}

// Click toggles the seat under a screen point.  It reports whether a seat
// was hit; err carries the rejected transition, if any.
func (e *Engine) Click(sx, sy float64) (model.Seat, bool, error) {
	i := e.seatAt(sx, sy)
	if i < 0 {
		return model.Seat{}, false, nil
	}
	err := e.toggleSlot(i)
	return e.seats[i], true, err
}

// Select adds a seat to the selection.  When the selection is full the
// rejection is also kept as a transient notice.
func (e *Engine) Select(id string) error {
	i := e.find(id, func(s *model.Seat) bool { return s.Status.Selectable() })
	if i < 0 {
		return ErrSeatNotFound
	}
	return e.selectSlot(i)
}

func (e *Engine) selectSlot(i int) error {
	err := e.selection.Select(i, &e.seats[i])
	if err == ErrSelectionLimit {
		e.notice = notice{err: err, until: e.now().Add(e.cfg.NoticeDuration)}
	}
	return err
}

// Deselect removes a seat from the selection, restoring its prior status.
func (e *Engine) Deselect(id string) error {
	i := e.find(id, func(s *model.Seat) bool { return s.Status == model.StatusSelected })
	if i < 0 {
		return ErrSeatNotFound
	}
	return e.selection.Deselect(i, &e.seats[i])
}

// Toggle selects an unselected seat or deselects a selected one.
func (e *Engine) Toggle(id string) error {
	slots := e.byID[id]
	if len(slots) == 0 {
		return ErrSeatNotFound
	}
	return e.toggleSlot(slots[0])
}

func (e *Engine) toggleSlot(i int) error {
	if e.seats[i].Status == model.StatusSelected {
		return e.selection.Deselect(i, &e.seats[i])
	}
	return e.selectSlot(i)
}

// Selected returns the selection snapshots in selection order.
func (e *Engine) Selected() []model.SelectedSeat { return e.selection.Snapshot() }

// ClearSelection deselects every seat, restoring prior statuses.
func (e *Engine) ClearSelection() {
	e.selection.Restore(e.slot)
}

// Commit forwards the selection to the cart.  On success the selection is
// cleared and the forwarded lines are returned; on failure nothing changes.
func (e *Engine) Commit(ctx context.Context) ([]model.CartSeat, error) {
	if !e.loaded {
		return nil, ErrNoLayout
	}
	snap := e.selection.Snapshot()
	if len(snap) == 0 {
		return nil, ErrEmptySelection
	}
	lines := make([]model.CartSeat, 0, len(snap))
	for _, s := range snap {
		lines = append(lines, s.CartLine())
	}
	if err := e.cart.AddSeats(ctx, e.loadedKey.EventID, lines); err != nil {
		return nil, fmt.Errorf("commit selection: %w", err)
	}
	e.ClearSelection()
	return lines, nil
}

// Notice returns the current transient warning, or nil once it expired.
func (e *Engine) Notice() error {
	if e.notice.err == nil || !e.now().Before(e.notice.until) {
		return nil
	}
	return e.notice.err
}

// Zoom scales around a screen point, then keeps the content in frame.
func (e *Engine) Zoom(factor, sx, sy float64) {
	e.viewport.ZoomAt(factor, sx, sy)
	e.viewport.EnforceBounds()
}

// Pan drags the content by screen deltas, then keeps it in frame.
func (e *Engine) Pan(dx, dy float64) {
	e.viewport.Pan(dx, dy)
	e.viewport.EnforceBounds()
}

// Resize updates the visible frame.
func (e *Engine) Resize(width, height float64) {
	e.viewport.SetFrame(width, height)
	e.viewport.EnforceBounds()
}

// Fit scales the loaded content to the frame.
func (e *Engine) Fit() { e.viewport.Fit() }

// Viewport returns the viewport transform.
func (e *Engine) Viewport() ViewportState { return e.viewport.State() }

// Stats counts seats per status and totals the selected price.
func (e *Engine) Stats() Stats {
	st := Stats{
		Total:        len(e.seats),
		ByStatus:     make(map[model.Status]int),
		Selected:     e.selection.Len(),
		MaxSelection: e.selection.Max(),
	}
	for i := range e.seats {
		st.ByStatus[e.seats[i].Status]++
	}
	for _, s := range e.selection.Snapshot() {
		st.SelectedTotal += s.Tier.Price
	}
	return st
}

// layoutCell locates a seat by its layout cell, which stays stable across
// regenerations of the same layout.
type layoutCell struct {
	section string
	row     int
	col     int
}

func cellOf(s *model.Seat) layoutCell {
	return layoutCell{section: s.SectionID, row: s.RowIndex, col: s.Column}
}
