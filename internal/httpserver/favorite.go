package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/service"
)

type FavoriteHTTP struct {
	Svc *service.FavoriteService
}

func (h *FavoriteHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.list")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	lines, err := h.Svc.List(ctx, uid)
	if err != nil {
		l.Error("favorite_list_failed", "status", 500, "reason", "cannot fetch favorites", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch favorites")
	}
	return c.JSON(http.StatusOK, lines)
}

func (h *FavoriteHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.add")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := paramUint(c, "id")
	if err != nil {
		l.Warn("favorite_add_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Add(ctx, uid, productID); err != nil {
		code, msg := statusFor(err)
		l.Warn("favorite_add_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FavoriteHTTP) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.remove")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := paramUint(c, "id")
	if err != nil {
		l.Warn("favorite_remove_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Remove(ctx, uid, productID); err != nil {
		code, msg := statusFor(err)
		l.Warn("favorite_remove_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.NoContent(http.StatusNoContent)
}
