package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// legalTransitions is the order status machine: delivered and cancelled
// are terminal.
var legalTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, error) {
	if req.Address.FullName == "" || req.Address.Line1 == "" || req.Address.City == "" {
		return nil, fmt.Errorf("%w: shipping address incomplete", ErrValidation)
	}
	if req.PaymentMethod == "" {
		return nil, fmt.Errorf("%w: payment method required", ErrValidation)
	}
	if req.Discount < 0 || req.ShippingCost < 0 {
		return nil, fmt.Errorf("%w: negative amounts", ErrValidation)
	}

	order, err := s.Repo.CreateOrder(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmptyCart):
			return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
		case errors.Is(err, repo.ErrExcessiveDiscount):
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		case errors.Is(err, repo.ErrInsufficientStock):
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id, userID uint, admin bool) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint, page int) (int64, []models.Order, error) {
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.ListOrders(ctx, userID, offset, limit)
}

func (s *OrderService) ListAllOrders(ctx context.Context, status models.OrderStatus, page int) (int64, []models.Order, error) {
	if status != "" && !validStatus(status) {
		return 0, nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.ListAllOrders(ctx, status, offset, limit)
}

func validStatus(st models.OrderStatus) bool {
	switch st {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCancelled:
		return true
	}
	return false
}

// UpdateStatus validates the transition against the state machine before
// anything is written; illegal transitions are rejected with a typed
// error instead of accepting any string.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, next models.OrderStatus) (*models.Order, error) {
	if !validStatus(next) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, next)
	}

	if err := s.Repo.SetOrderStatus(ctx, order, next); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the race against a concurrent transition.
			return nil, fmt.Errorf("%w: status changed concurrently", ErrConflict)
		}
		return nil, err
	}
	return order, nil
}
