package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/mykafka"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type OrderHTTP struct {
	Svc      *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, uid, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("create_order_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"number":  order.Number.String(),
		"userID":  order.UserID,
		"total":   order.FinalAmount,
	})

	l.Info("create_order_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("get_order_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	order, err := h.Svc.GetOrder(ctx, id, uid, isAdmin(c))
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("get_order_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	total, orders, err := h.Svc.ListOrders(ctx, uid, page)
	if err != nil {
		l.Error("list_orders_failed", "status", 500, "reason", "cannot fetch orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch orders")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":        orders,
		"page":        page,
		"total":       total,
		"total_pages": util.TotalPages(total, util.DefaultPageSize),
	})
}

func (h *OrderHTTP) ListAllOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_all_orders")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	status := models.OrderStatus(c.QueryParam("status"))

	total, orders, err := h.Svc.ListAllOrders(ctx, status, page)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("list_all_orders_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":        orders,
		"page":        page,
		"total":       total,
		"total_pages": util.TotalPages(total, util.DefaultPageSize),
	})
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("update_status_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("update_status_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(order.ID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  string(order.Status),
	})

	l.Info("update_status_success", "order_id", order.ID, "new_status", order.Status)
	return c.JSON(http.StatusOK, order)
}
