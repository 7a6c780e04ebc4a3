package service

import (
	"context"
	"fmt"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type ReviewService struct {
	Repo *repo.GormRepo
}

// AddReview inserts an unapproved review; one review per (user, product).
func (s *ReviewService) AddReview(ctx context.Context, userID, productID uint, req transport.AddReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	exists, err := s.Repo.ReviewExists(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: review already submitted", ErrConflict)
	}

	review := &models.Review{
		ProductID:  productID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
		IsApproved: false,
	}
	if err := s.Repo.CreateReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ProductReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.Repo.ApprovedReviews(ctx, productID)
}

func (s *ReviewService) AllReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	return s.Repo.AllReviews(ctx, productID)
}

func (s *ReviewService) PendingReviews(ctx context.Context, page int) (int64, []models.Review, error) {
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.PendingReviews(ctx, offset, limit)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id uint, req transport.PatchReviewRequest) (*models.Review, error) {
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return s.Repo.PatchReview(ctx, req, id)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id uint) error {
	return s.Repo.DeleteReview(ctx, id)
}
