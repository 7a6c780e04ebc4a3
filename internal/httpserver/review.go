package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modavista/storefront/internal/logging"
	"github.com/modavista/storefront/internal/mykafka"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type ReviewHTTP struct {
	Svc      *service.ReviewService
	Producer *mykafka.Producer
}

func (h *ReviewHTTP) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.add_review")

	uid, err := userID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	productID, err := paramUint(c, "id")
	if err != nil {
		l.Warn("add_review_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.AddReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_review_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.AddReview(ctx, uid, productID, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("add_review_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	l.Info("add_review_success", "review_id", review.ID)
	return c.JSON(http.StatusCreated, review)
}

// ProductReviews is the storefront listing: approved reviews only.
func (h *ReviewHTTP) ProductReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.product_reviews")

	productID, err := paramUint(c, "id")
	if err != nil {
		l.Warn("product_reviews_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	reviews, err := h.Svc.ProductReviews(ctx, productID)
	if err != nil {
		l.Error("product_reviews_failed", "status", 500, "reason", "cannot fetch reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch reviews")
	}
	return c.JSON(http.StatusOK, reviews)
}

// AllReviews powers the moderation view: every approval state included.
func (h *ReviewHTTP) AllReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.all_reviews")

	productID, err := paramUint(c, "id")
	if err != nil {
		l.Warn("all_reviews_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	reviews, err := h.Svc.AllReviews(ctx, productID)
	if err != nil {
		l.Error("all_reviews_failed", "status", 500, "reason", "cannot fetch reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch reviews")
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHTTP) PendingReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.pending_reviews")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	total, reviews, err := h.Svc.PendingReviews(ctx, page)
	if err != nil {
		l.Error("pending_reviews_failed", "status", 500, "reason", "cannot fetch reviews", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot fetch reviews")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data":        reviews,
		"page":        page,
		"total":       total,
		"total_pages": util.TotalPages(total, util.DefaultPageSize),
	})
}

func (h *ReviewHTTP) UpdateReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.update_review")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("update_review_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchReviewRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_review_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.UpdateReview(ctx, id, req)
	if err != nil {
		code, msg := statusFor(err)
		l.Warn("update_review_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	if req.IsApproved != nil {
		publish(c, h.Producer, "review_events", fmt.Sprint(review.ID), map[string]any{
			"type":      "review_moderated",
			"reviewID":  review.ID,
			"productID": review.ProductID,
			"approved":  review.IsApproved,
		})
	}

	l.Info("update_review_success", "review_id", review.ID)
	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHTTP) DeleteReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review.delete_review")

	id, err := paramUint(c, "id")
	if err != nil {
		l.Warn("delete_review_failed", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteReview(ctx, id); err != nil {
		code, msg := statusFor(err)
		l.Warn("delete_review_failed", "status", code, "reason", msg, "error", err)
		return echo.NewHTTPError(code, msg)
	}

	publish(c, h.Producer, "review_events", fmt.Sprint(id), map[string]any{
		"type":     "review_deleted",
		"reviewID": id,
	})

	return c.NoContent(http.StatusNoContent)
}
