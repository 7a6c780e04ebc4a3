package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/transport"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrExcessiveDiscount = errors.New("discount exceeds order total")
)

// CreateOrder turns the user's cart into an order inside one transaction:
// unit prices are snapshotted into order items, stock counters are
// decremented with a non-negative guard, a ledger row is appended per
// item and the cart is cleared. Any failure rolls back the whole order.
func (r *GormRepo) CreateOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, error) {
	var order *models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := cartLines(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		var subtotal float64
		items := make([]models.OrderItem, 0, len(lines))

		for _, l := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", l.ProductID, l.Quantity).
				Updates(map[string]interface{}{
					"stock_quantity": gorm.Expr("stock_quantity - ?", l.Quantity),
					"sold_count":     gorm.Expr("sold_count + ?", l.Quantity),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, l.ProductID)
			}

			lineTotal := l.Price * float64(l.Quantity)
			subtotal += lineTotal
			items = append(items, models.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.Price,
				LineTotal: lineTotal,
			})
		}

		finalAmount := subtotal - req.Discount + req.ShippingCost
		if finalAmount < 0 {
			return fmt.Errorf("%w: %.2f off a %.2f order", ErrExcessiveDiscount, req.Discount, subtotal+req.ShippingCost)
		}

		order = &models.Order{
			Number:        uuid.New(),
			UserID:        userID,
			Status:        models.OrderStatusPending,
			Address:       req.Address,
			PaymentMethod: req.PaymentMethod,
			TotalAmount:   subtotal,
			Discount:      req.Discount,
			ShippingCost:  req.ShippingCost,
			FinalAmount:   finalAmount,
			Items:         items,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, it := range order.Items {
			mv := models.StockMovement{
				ProductID:    it.ProductID,
				Quantity:     int(it.Quantity),
				MovementType: models.MovementOut,
				Note:         fmt.Sprintf("order %s", order.Number),
			}
			if err := tx.Create(&mv).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) ListAllOrders(ctx context.Context, status models.OrderStatus, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// SetOrderStatus applies an already-validated transition. The status
// predicate in the UPDATE guards against a concurrent transition from
// under us; cancellation restores stock through the ledger.
func (r *GormRepo) SetOrderStatus(ctx context.Context, order *models.Order, next models.OrderStatus) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if next != models.OrderStatusCancelled {
			order.Status = next
			return nil
		}

		for _, it := range order.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", it.ProductID).
				Updates(map[string]interface{}{
					"stock_quantity": gorm.Expr("stock_quantity + ?", it.Quantity),
					"sold_count":     gorm.Expr("sold_count - ?", it.Quantity),
				}).Error; err != nil {
				return err
			}

			mv := models.StockMovement{
				ProductID:    it.ProductID,
				Quantity:     int(it.Quantity),
				MovementType: models.MovementIn,
				Note:         fmt.Sprintf("order %s cancelled", order.Number),
			}
			if err := tx.Create(&mv).Error; err != nil {
				return err
			}
		}

		order.Status = next
		return nil
	})
}
