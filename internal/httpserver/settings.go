package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/service"
)

type SettingsHTTP struct {
	Svc *service.SettingsService
}

func (h *SettingsHTTP) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.list")

	settings, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("settings_list_failed", "status", 500, "reason", "cannot fetch settings", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch settings")
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *SettingsHTTP) Get(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get")

	setting, err := h.Svc.Get(ctx, c.Param("key"))
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("settings_get_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.JSON(http.StatusOK, setting)
}

func (h *SettingsHTTP) Put(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.put")

	var req struct {
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("settings_put_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	setting, err := h.Svc.Put(ctx, c.Param("key"), req.Value)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("settings_put_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	l.Info("settings_put_success", "key", setting.Key)
	return c.JSON(http.StatusOK, setting)
}
