package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/mykafka"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/service/search"
	"github.com/modavista/storefront/internal/transport"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
	Search   *search.Client
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	var f transport.ProductFilter
	if err := c.Bind(&f); err != nil {
		l.Warn("get_products_failed", "status", 400, "reason", "invalid filter", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter")
	}

	page, err := h.Svc.ListProducts(ctx, f)
	if err != nil {
		l.Error("get_products_failed", "status", 500, "reason", "cannot fetch products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch products")
	}

	l.Info("get_products_success")
	return c.JSON(http.StatusOK, page)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("get_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_product_failed", "status", 404, "reason", "product not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_failed", "status", 500, "reason", "cannot fetch product", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) FeaturedProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.featured_products")

	items, err := h.Svc.FeaturedProducts(ctx)
	if err != nil {
		l.Error("featured_products_failed", "status", 500, "reason", "cannot fetch products", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch products")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("create_product_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	if err := h.Search.IndexProduct(ctx, prod); err != nil {
		l.Warn("index_product_failed", "product_id", prod.ID, "error", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("create_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusCreated, prod)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_product")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	prod, err := h.Svc.PatchProduct(ctx, req, id)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("patch_product_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	if err := h.Search.IndexProduct(ctx, prod); err != nil {
		l.Warn("index_product_failed", "product_id", prod.ID, "error", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	l.Info("patch_product_success", "product_id", prod.ID)
	return c.JSON(http.StatusOK, prod)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("delete_product_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		code, msg := statusFor(err)
		l.Warn("delete_product_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	if err := h.Search.DeleteProduct(ctx, id); err != nil {
		l.Warn("deindex_product_failed", "product_id", id, "error", err)
	}

	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	cats, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "reason", "cannot fetch categories", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch categories")
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *CatalogHTTP) GetCategoryBySlug(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_category")

	cat, err := h.Svc.CategoryBySlug(ctx, c.Param("slug"))
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("get_category_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("create_category_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	l.Info("create_category_success", "category_id", cat.ID, "slug", cat.Slug)
	return c.JSON(http.StatusCreated, cat)
}

func (h *CatalogHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_category")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.UpdateCategory(ctx, id, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("update_category_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("delete_category_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		code, msg := statusFor(err)
		l.Warn("delete_category_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) ProductRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.product_rating")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("product_rating_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	avg, err := h.Svc.AverageRating(ctx, id)
	if err != nil {
		l.Error("product_rating_failed", "status", 500, "reason", "cannot compute rating", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot compute rating")
	}
	return c.JSON(http.StatusOK, echo.Map{"product_id": id, "average_rating": avg})
}
