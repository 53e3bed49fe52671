package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/fixture"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/middleware"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/model"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/service"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/session"
)

const (
	testEvent  = "ev1"
	testSecret = "test-secret"
)

func testLayout() model.VenueLayout {
	tier := model.Tier{ID: "main", Name: "Main", Price: 40}
	return model.VenueLayout{
		EventID: testEvent,
		Name:    "Test Hall",
		Sections: []model.Section{
			{
				ID: "main", Name: "Main", Prefix: "M",
				Numbering: model.NumberingPerSection,
				RowCount:  2, ColumnCount: 3,
				Rows: []model.RowConfig{{Tier: tier, Direction: model.DirectionLeft}},
			},
			{
				ID: "side", Name: "Side", Prefix: "S",
				Position:  model.Position{Y: 200},
				Numbering: model.NumberingPerSection,
				RowCount:  1, ColumnCount: 2,
				Rows: []model.RowConfig{{Tier: tier}},
			},
		},
	}
}

type testServer struct {
	e      *echo.Echo
	src    *fixture.Source
	store  *session.Store
	cfg    seatmap.Config
	layout LayoutFetcher
}

func newTestServer(t *testing.T, cfg seatmap.Config) *testServer {
	t.Helper()
	src := fixture.NewSource(1, fixture.Rates{})
	src.Put(testLayout())
	cart := service.NewCartService(src, nil, nil)
	store := session.NewStore(time.Minute, func(string) *seatmap.Engine {
		return seatmap.New(cfg, cart)
	}, nil)

	ts := &testServer{e: echo.New(), src: src, store: store, cfg: cfg, layout: src}
	ts.routes(src, src)
	return ts
}

func (ts *testServer) routes(layouts LayoutFetcher, overrides OverrideFetcher) {
	maps := NewSeatMapHandler(layouts, overrides, ts.cfg, nil)
	h := NewSessionHandler(ts.store, layouts, overrides, ts.src, nil)
	auth := middleware.JWTAuth(testSecret)

	ts.e.GET("/v1/events/:event_id/seatmap", maps.Get)
	ts.e.POST("/v1/events/:event_id/sessions", h.Create)
	ts.e.GET("/v1/events/:event_id/commits", h.ListCommits, auth)
	ts.e.GET("/v1/sessions/:id", h.Get)
	ts.e.DELETE("/v1/sessions/:id", h.Delete)
	ts.e.PUT("/v1/sessions/:id/section", h.SetSection)
	ts.e.POST("/v1/sessions/:id/refresh", h.Refresh)
	ts.e.POST("/v1/sessions/:id/pointer", h.Pointer)
	ts.e.POST("/v1/sessions/:id/hover", h.Hover)
	ts.e.POST("/v1/sessions/:id/zoom", h.Zoom)
	ts.e.POST("/v1/sessions/:id/pan", h.Pan)
	ts.e.POST("/v1/sessions/:id/resize", h.Resize)
	ts.e.POST("/v1/sessions/:id/seats/:seat_id", h.SelectSeat)
	ts.e.DELETE("/v1/sessions/:id/seats/:seat_id", h.DeselectSeat)
	ts.e.DELETE("/v1/sessions/:id/selection", h.ClearSelection)
	ts.e.POST("/v1/sessions/:id/commit", h.Commit, auth)
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ts *testServer) createSession(t *testing.T, body string) sessionResponse {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/events/"+testEvent+"/sessions", body, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[sessionResponse](t, rec)
}

func token(t *testing.T, customer string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: customer}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func findSeat(t *testing.T, seats []model.Seat, id string) model.Seat {
	t.Helper()
	for _, s := range seats {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("seat %s not in response", id)
	return model.Seat{}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", Health)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSeatMap_Get(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())

	rec := ts.do(t, http.MethodGet, "/v1/events/ev1/seatmap", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	full := decode[seatMapResponse](t, rec)
	assert.Len(t, full.Seats, 8)
	assert.Equal(t, 8, full.Stats.Total)
	assert.Positive(t, full.Width)

	rec = ts.do(t, http.MethodGet, "/v1/events/ev1/seatmap?section=side", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	side := decode[seatMapResponse](t, rec)
	assert.Equal(t, "side", side.SectionID)
	require.Len(t, side.Seats, 2)
	assert.Equal(t, model.StatusAvailable, findSeat(t, side.Seats, "S-A-A1").Status)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/v1/events/ev1/seatmap?section=nope", "", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/v1/events/missing/seatmap", "", "").Code)
}

func TestSession_CreateAndGet(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())
	s := ts.createSession(t, `{"section_id":"main","viewport_width":800,"viewport_height":600}`)

	assert.True(t, s.Loaded)
	assert.Equal(t, "main", s.SectionID)
	assert.Len(t, s.Seats, 6)
	assert.Empty(t, s.Selected)
	assert.Equal(t, 800.0, s.Viewport.Width)
	assert.False(t, s.ExpiresAt.IsZero())

	rec := ts.do(t, http.MethodGet, "/v1/sessions/"+s.ID+"?seats=false", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	light := decode[sessionResponse](t, rec)
	assert.Empty(t, light.Seats)
	assert.Equal(t, 6, light.Stats.Total)

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/v1/sessions/"+s.ID, "", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/v1/sessions/"+s.ID, "", "").Code)
}

func TestSession_CreateErrors(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())

	rec := ts.do(t, http.MethodPost, "/v1/events/"+testEvent+"/sessions", `{"section_id":"nope"}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(t, http.MethodPost, "/v1/events/missing/sessions", `{}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = ts.do(t, http.MethodPost, "/v1/events/"+testEvent+"/sessions", `{"viewport_width":-1}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodPost, "/v1/events/"+testEvent+"/sessions", `{bad`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Zero(t, ts.store.Len(), "failed loads do not leave sessions behind")
}

func TestSession_PointerTogglesSeat(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())
	s := ts.createSession(t, `{"section_id":"main","viewport_width":400,"viewport_height":300}`)

	target := findSeat(t, s.Seats, "M-A-B2")
	vp := s.Viewport
	click := func(x, y float64) pointerResponse {
		body, _ := json.Marshal(point{X: x, Y: y})
		rec := ts.do(t, http.MethodPost, "/v1/sessions/"+s.ID+"/pointer", string(body), "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[pointerResponse](t, rec)
	}
	sx, sy := target.X*vp.Scale+vp.OffsetX, target.Y*vp.Scale+vp.OffsetY

	got := click(sx, sy)
	require.True(t, got.Hit)
	assert.Equal(t, "M-A-B2", got.Seat.ID)
	assert.Equal(t, model.StatusSelected, got.Seat.Status)
	require.Len(t, got.Selected, 1)
	assert.Equal(t, 40.0, got.Stats.SelectedTotal)

	got = click(sx, sy)
	assert.Equal(t, model.StatusAvailable, got.Seat.Status)
	assert.Empty(t, got.Selected)

	got = click(-500, -500)
	assert.False(t, got.Hit)
	assert.Nil(t, got.Seat)

	rec := ts.do(t, http.MethodPost, "/v1/sessions/"+s.ID+"/hover", `{"x":-500,"y":-500}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hit":false}`, rec.Body.String())
}

func TestSession_ViewportEndpoints(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())
	s := ts.createSession(t, `{"section_id":"main","viewport_width":400,"viewport_height":300}`)
	base := "/v1/sessions/" + s.ID

	type vpResponse struct {
		Viewport seatmap.ViewportState `json:"viewport"`
	}

	rec := ts.do(t, http.MethodPost, base+"/zoom", `{"factor":100,"x":200,"y":150}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, seatmap.DefaultMaxScale, decode[vpResponse](t, rec).Viewport.Scale)

	rec = ts.do(t, http.MethodPost, base+"/zoom", `{"factor":0}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, base+"/pan", `{"dx":100000,"dy":100000}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	vp := decode[vpResponse](t, rec).Viewport
	assert.LessOrEqual(t, vp.OffsetX, 0.0, "pan is bounded")
	assert.LessOrEqual(t, vp.OffsetY, 0.0)

	rec = ts.do(t, http.MethodPost, base+"/resize", `{"width":800,"height":600,"fit":true}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 800.0, decode[vpResponse](t, rec).Viewport.Width)

	rec = ts.do(t, http.MethodPost, base+"/resize", `{"width":0,"height":600}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSession_SelectionEndpoints(t *testing.T) {
	cfg := seatmap.DefaultConfig()
	cfg.MaxSelection = 2
	ts := newTestServer(t, cfg)
	s := ts.createSession(t, `{"section_id":"main"}`)
	base := "/v1/sessions/" + s.ID

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/seats/M-A-A1", "", "").Code)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/seats/M-A-A2", "", "").Code)

	rec := ts.do(t, http.MethodPost, base+"/seats/M-A-A3", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.do(t, http.MethodGet, base+"?seats=false", "", "")
	assert.Equal(t, seatmap.ErrSelectionLimit.Error(), decode[sessionResponse](t, rec).Notice)

	assert.Equal(t, http.StatusConflict, ts.do(t, http.MethodPost, base+"/seats/M-A-A1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, base+"/seats/nope", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodDelete, base+"/seats/M-A-B1", "", "").Code)

	rec = ts.do(t, http.MethodDelete, base+"/seats/M-A-A1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[pointerResponse](t, rec).Selected, 1)

	rec = ts.do(t, http.MethodDelete, base+"/selection", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[sessionResponse](t, rec).Selected)
}

func TestSession_SectionSwitchClearsSelection(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())
	s := ts.createSession(t, `{"section_id":"main"}`)
	base := "/v1/sessions/" + s.ID
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, base+"/seats/M-A-A1", "", "").Code)

	rec := ts.do(t, http.MethodPut, base+"/section", `{"section_id":"side"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[sessionResponse](t, rec)
	assert.Equal(t, "side", got.SectionID)
	assert.Len(t, got.Seats, 2)
	assert.Empty(t, got.Selected)

	rec = ts.do(t, http.MethodPut, base+"/section", `{"section_id":""}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[sessionResponse](t, rec).Seats, 8)
}

func TestSession_CommitFlow(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())
	alice := ts.createSession(t, `{"section_id":"main"}`)
	bob := ts.createSession(t, `{"section_id":"main"}`)

	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/v1/sessions/"+alice.ID+"/seats/M-A-A1", "", "").Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/v1/sessions/"+bob.ID+"/seats/M-A-A1", "", "").Code)
	require.Equal(t, http.StatusOK, ts.do(t, http.MethodPost, "/v1/sessions/"+bob.ID+"/seats/M-A-A2", "", "").Code)

	rec := ts.do(t, http.MethodPost, "/v1/sessions/"+alice.ID+"/commit", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(t, http.MethodPost, "/v1/sessions/"+alice.ID+"/commit", "", token(t, "alice"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var committed struct {
		CommitID string           `json:"commit_id"`
		Seats    []model.CartSeat `json:"seats"`
		Total    float64          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &committed))
	assert.Len(t, committed.CommitID, 36)
	assert.Equal(t, 40.0, committed.Total)

	rec = ts.do(t, http.MethodPost, "/v1/sessions/"+bob.ID+"/commit", "", token(t, "bob"))
	require.Equal(t, http.StatusConflict, rec.Code)
	conflict := decode[map[string]any](t, rec)
	assert.Equal(t, []any{"M-A-A1"}, conflict["seat_ids"])

	rec = ts.do(t, http.MethodPost, "/v1/sessions/"+bob.ID+"/refresh", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := decode[sessionResponse](t, rec)
	require.Len(t, refreshed.Selected, 1)
	assert.Equal(t, "M-A-A2", refreshed.Selected[0].SeatID)
	assert.Equal(t, model.StatusReserved, findSeat(t, refreshed.Seats, "M-A-A1").Status)

	rec = ts.do(t, http.MethodGet, "/v1/events/ev1/commits", "", token(t, "alice"))
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		Items []model.CartCommit `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, committed.CommitID, list.Items[0].CommitID)

	rec = ts.do(t, http.MethodPost, "/v1/sessions/"+alice.ID+"/commit", "", token(t, "alice"))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "nothing left to commit")
}

type MockOverrideFetcher struct{ mock.Mock }

func (m *MockOverrideFetcher) FetchOverrides(ctx context.Context, eventID, sectionID string) (model.OverrideDocument, error) {
	args := m.Called(ctx, eventID, sectionID)
	return args.Get(0).(model.OverrideDocument), args.Error(1)
}

func TestSession_FetchFailureIs500(t *testing.T) {
	ts := newTestServer(t, seatmap.DefaultConfig())
	overrides := new(MockOverrideFetcher)
	overrides.On("FetchOverrides", mock.Anything, testEvent, "main").
		Return(model.OverrideDocument{}, errors.New("connection refused"))
	ts.e = echo.New()
	ts.routes(ts.layout, overrides)

	rec := ts.do(t, http.MethodPost, "/v1/events/"+testEvent+"/sessions", `{"section_id":"main"}`, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
	overrides.AssertExpectations(t)
}

func TestWriteError_Mapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{session.ErrNotFound, http.StatusNotFound},
		{seatmap.ErrSeatNotFound, http.StatusNotFound},
		{seatmap.ErrSelectionLimit, http.StatusUnprocessableEntity},
		{seatmap.ErrStaleLoad, http.StatusConflict},
		{seatmap.ErrSeatUnavailable, http.StatusConflict},
		{&seatmap.ConflictError{SeatIDs: []string{"x"}}, http.StatusConflict},
		{seatmap.ErrEmptySelection, http.StatusBadRequest},
		{service.ErrNoCustomer, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	e := echo.New()
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, writeError(c, zapNop, tt.err))
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}
}

var zapNop = zap.NewNop()
