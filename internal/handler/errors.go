package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/repository"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/seatmap"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/service"
	"github.com/basilkbaby/basilkbaby-eventmanagement-ui-sub000/internal/session"
)

var errSectionNotFound = errors.New("section not found")

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// writeError maps engine, store and cart errors onto HTTP responses.
// Anything unrecognised is logged and reported as 500 without details.
func writeError(c echo.Context, log *zap.Logger, err error) error {
	var conflict *seatmap.ConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":    "some seats are no longer available",
			"seat_ids": conflict.SeatIDs,
		})
	case errors.Is(err, session.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, repository.ErrLayoutNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	case errors.Is(err, errSectionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "section not found"})
	case errors.Is(err, seatmap.ErrSeatNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
	case errors.Is(err, seatmap.ErrSelectionLimit):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, seatmap.ErrSeatUnavailable), errors.Is(err, seatmap.ErrStaleLoad):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, seatmap.ErrNotSelected),
		errors.Is(err, seatmap.ErrEmptySelection),
		errors.Is(err, seatmap.ErrNoLayout):
		return badRequest(c, err.Error())
	case errors.Is(err, service.ErrNoCustomer):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	log.Error("request failed",
		zap.String("path", c.Request().URL.Path),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
