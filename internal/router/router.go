// Package router registers the HTTP routes of the seat-map service.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/handler"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/middleware"
)

// Deps carries the handlers and route-level middleware.  Cache and
// RateLimit may be nil.
type Deps struct {
	SeatMap   *handler.SeatMapHandler
	Sessions  *handler.SessionHandler
	JWTSecret string
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// Register mounts every route.
func Register(e *echo.Echo, d Deps) {
	RegisterRoutes(e)

	var read []echo.MiddlewareFunc
	if d.Cache != nil {
		read = append(read, d.Cache)
	}
	e.GET("/v1/events/:event_id/seatmap", d.SeatMap.Get, read...)

	RegisterSessions(e, d.Sessions, d.JWTSecret, d.RateLimit)
}

// RegisterSessions mounts the interactive session endpoints.  Session ids
// are unguessable and act as the capability for everything except commit,
// which also needs a customer token.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	var mw []echo.MiddlewareFunc
	if rateLimit != nil {
		mw = append(mw, rateLimit)
	}
	auth := middleware.JWTAuth(jwtSecret)

	ev := e.Group("/v1/events/:event_id", mw...)
	ev.POST("/sessions", h.Create)
	ev.GET("/commits", h.ListCommits, auth)

	g := e.Group("/v1/sessions/:id", mw...)
	g.GET("", h.Get)
	g.DELETE("", h.Delete)
	g.PUT("/section", h.SetSection)
	g.POST("/refresh", h.Refresh)
	g.POST("/pointer", h.Pointer)
	g.POST("/hover", h.Hover)
	g.POST("/zoom", h.Zoom)
	g.POST("/pan", h.Pan)
	g.POST("/resize", h.Resize)
	g.POST("/seats/:seat_id", h.SelectSeat)
	g.DELETE("/seats/:seat_id", h.DeselectSeat)
	g.DELETE("/selection", h.ClearSelection)
	g.POST("/commit", h.Commit, auth)
}
