package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type StockHTTP struct {
	Svc *service.StockService
}

func (h *StockHTTP) Adjust(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stock.adjust")

	var req transport.AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("stock_adjust_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	mv, err := h.Svc.Adjust(ctx, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("stock_adjust_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	l.Info("stock_adjust_success", "product_id", mv.ProductID, "movement", mv.MovementType)
	return c.JSON(http.StatusCreated, mv)
}

func (h *StockHTTP) Movements(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stock.movements")

	productID := queryUint(c, "product_id")
	page := util.ParseIntDefault(c.QueryParam("page"), 1)

	total, moves, err := h.Svc.Movements(ctx, productID, page)
	if err != nil {
		l.Error("stock_movements_failed", "status", 500, "reason", "cannot fetch movements", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch movements")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":        moves,
		"page":        page,
		"total":       total,
		"total_pages": util.TotalPages(total, util.DefaultPageSize),
	})
}

func (h *StockHTTP) Reconcile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "stock.reconcile")

	productID, err := paramUint(c, "id")
	if err != nil {
		l.Warn("stock_reconcile_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	repair, _ := strconv.ParseBool(c.QueryParam("repair"))

	report, err := h.Svc.Reconcile(ctx, productID, repair)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("stock_reconcile_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	if report.Drift != 0 {
		l.Warn("stock_drift_detected", "product_id", report.ProductID, "drift", report.Drift, "repaired", report.Repaired)
	}
	return c.JSON(http.StatusOK, report)
}
