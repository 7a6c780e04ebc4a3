package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/mykafka"
	"github.com/modavista/storefront/internal/service"
)

func userID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok || id == 0 {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "admin"
}

func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}

func queryUint(c echo.Context, name string) uint {
	v, err := strconv.ParseUint(c.QueryParam(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// statusFor maps service sentinels onto HTTP status codes; anything
// unrecognized is a 500 with a generic message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, validationDetail(err)
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, service.ErrIllegalTransition):
		return http.StatusConflict, "illegal status transition"
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict, "insufficient stock"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// validationDetail returns the reason the service composed; the sentinel
// prefix is noise for clients.
func validationDetail(err error) string {
	msg := err.Error()
	if detail, ok := strings.CutPrefix(msg, service.ErrValidation.Error()+": "); ok {
		return detail
	}
	return msg
}

// publish is best-effort: event delivery failures are logged and never
// fail the request.
func publish(c echo.Context, prod *mykafka.Producer, topic, key string, event map[string]any) {
	if prod == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := prod.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "topic", topic, "error", err)
	}
}
