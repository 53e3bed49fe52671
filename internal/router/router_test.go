package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/fixture"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/handler"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/service"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/session"
)

func TestRegister(t *testing.T) {
	src := fixture.NewSource(1, fixture.DefaultRates)
	cart := service.NewCartService(src, nil, nil)
	store := session.NewStore(time.Minute, func(string) *seatmap.Engine {
		return seatmap.New(seatmap.DefaultConfig(), cart)
	}, nil)

	e := echo.New()
	Register(e, Deps{
		SeatMap:   handler.NewSeatMapHandler(src, src, seatmap.DefaultConfig(), nil),
		Sessions:  handler.NewSessionHandler(store, src, src, src, nil),
		JWTSecret: "s",
	})

	routes := map[string]bool{}
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /v1/events/:event_id/seatmap",
		"POST /v1/events/:event_id/sessions",
		"GET /v1/events/:event_id/commits",
		"GET /v1/sessions/:id",
		"PUT /v1/sessions/:id/section",
		"POST /v1/sessions/:id/pointer",
		"POST /v1/sessions/:id/seats/:seat_id",
		"DELETE /v1/sessions/:id/selection",
		"POST /v1/sessions/:id/commit",
	} {
		assert.True(t, routes[want], want)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events/"+fixture.DemoEventID+"/seatmap", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/sessions/x/commit", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "commit requires a token")
}
