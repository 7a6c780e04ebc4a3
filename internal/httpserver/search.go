package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/service/search"
	"github.com/modavista/storefront/internal/util"
)

type SearchHTTP struct {
	Client *search.Client
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	if !h.Client.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not configured")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, products, err := h.Client.Search(ctx, q, from, size)
	if err != nil {
		l.Error("search_failed", "status", 500, "reason", "search backend error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search backend error")
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
