package service

import (
	"context"
	"fmt"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

func (s *CartService) AddToCart(ctx context.Context, userID uint, req transport.AddToCartRequest) (*models.CartItem, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if _, err := s.Repo.GetProduct(ctx, req.ProductID); err != nil {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, req.ProductID)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity is an absolute set; the floor is enforced here, not in
// the caller.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID, userID, qty uint) (*models.CartItem, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}
	return s.Repo.SetCartQuantity(ctx, itemID, userID, qty)
}

func (s *CartService) RemoveFromCart(ctx context.Context, itemID, userID uint) error {
	return s.Repo.RemoveFromCart(ctx, itemID, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}

// GetCart recomputes the total on every read from current prices.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*transport.Cart, error) {
	lines, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, l := range lines {
		total += l.LineTotal
	}

	return &transport.Cart{Items: lines, Total: total}, nil
}
