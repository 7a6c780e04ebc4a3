package service

import (
	"context"
	"fmt"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/transport"
)

type FavoriteService struct {
	Repo *repo.GormRepo
}

func (s *FavoriteService) Add(ctx context.Context, userID, productID uint) error {
	if productID == 0 {
		return fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	return s.Repo.AddFavorite(ctx, &models.Favorite{UserID: userID, ProductID: productID})
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID uint) error {
	return s.Repo.RemoveFavorite(ctx, userID, productID)
}

func (s *FavoriteService) List(ctx context.Context, userID uint) ([]transport.FavoriteLine, error) {
	return s.Repo.ListFavorites(ctx, userID)
}
