package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/models"
)

func movementDelta(t models.MovementType, qty int) int {
	switch t {
	case models.MovementIn, models.MovementAdjustmentIn:
		return qty
	default:
		return -qty
	}
}

// AdjustStock appends a ledger row and applies the signed delta to the
// product counter in one transaction, guarded against going negative.
func (r *GormRepo) AdjustStock(ctx context.Context, mv *models.StockMovement) error {
	if mv.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	delta := movementDelta(mv.MovementType, mv.Quantity)

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock_quantity + ? >= 0", mv.ProductID, delta).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Product{}).Where("id = ?", mv.ProductID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return fmt.Errorf("%w: product %d", ErrInsufficientStock, mv.ProductID)
		}

		return tx.Create(mv).Error
	})
}

func (r *GormRepo) StockMovements(ctx context.Context, productID uint, offset, limit int) (int64, []models.StockMovement, error) {
	q := r.DB.WithContext(ctx).Model(&models.StockMovement{})
	if productID != 0 {
		q = q.Where("product_id = ?", productID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var moves []models.StockMovement
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&moves).Error; err != nil {
		return 0, nil, err
	}
	return total, moves, nil
}

// LedgerSum recomputes the running total from the append-only ledger.
func (r *GormRepo) LedgerSum(ctx context.Context, productID uint) (int, error) {
	var sum int
	err := r.DB.WithContext(ctx).
		Model(&models.StockMovement{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(CASE WHEN movement_type IN ('in', 'adjustment_in') THEN quantity ELSE -quantity END), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *GormRepo) SetStockQuantity(ctx context.Context, productID uint, qty int) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_quantity", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
