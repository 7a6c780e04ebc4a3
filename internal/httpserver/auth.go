package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/mykafka"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/tokens"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func createCookie(name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func setTokenCookies(c echo.Context, pair *transport.TokenPair) {
	c.SetCookie(createCookie("accessToken", pair.AccessToken, time.Now().Add(tokens.AccessTTL)))
	c.SetCookie(createCookie("refreshToken", pair.RefreshToken, time.Now().Add(tokens.RefreshTTL)))
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("register_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
	})

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(ctx, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("login_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	setTokenCookies(c, pair)
	l.Info("login_success")
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	ck, err := c.Cookie("refreshToken")
	if err != nil {
		l.Warn("refresh_failed", "status", 401, "reason", "missing refresh cookie", "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.Svc.Refresh(ctx, ck.Value)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("refresh_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	setTokenCookies(c, pair)
	return c.JSON(http.StatusOK, pair)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if ck, err := c.Cookie("refreshToken"); err == nil {
		if err := h.Svc.Logout(ctx, ck.Value); err != nil {
			l.Warn("logout_revoke_failed", "error", err)
		}
	}

	c.SetCookie(createCookie("accessToken", "", time.Unix(0, 0)))
	c.SetCookie(createCookie("refreshToken", "", time.Unix(0, 0)))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.list_users")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	total, users, err := h.Svc.ListUsers(ctx, page)
	if err != nil {
		l.Error("list_users_failed", "status", 500, "reason", "cannot fetch users", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch users")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":        users,
		"page":        page,
		"total":       total,
		"total_pages": util.TotalPages(total, util.DefaultPageSize),
	})
}

func (h *AuthHTTP) SetUserRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.set_user_role")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("set_user_role_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("set_user_role_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.SetUserRole(ctx, id, req.Role); err != nil {
		code, msg := statusFor(err)
		l.Warn("set_user_role_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	l.Info("set_user_role_success", "user_id", id, "role", req.Role)
	return c.NoContent(http.StatusNoContent)
}
