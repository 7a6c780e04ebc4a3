package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/transport"
)

// AddToCart upserts in a single statement so two concurrent adds for the
// same (user, product) both land as quantity increments.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + ?", item.Quantity),
			}),
		}).
		Create(item).Error
}

func (r *GormRepo) GetCartItem(ctx context.Context, id, userID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SetCartQuantity(ctx context.Context, id, userID, qty uint) (*models.CartItem, error) {
	item, err := r.GetCartItem(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	item.Quantity = qty
	if err := r.DB.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *GormRepo) RemoveFromCart(ctx context.Context, id, userID uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// GetCart joins cart rows with the current product snapshot; prices are
// read at query time, never frozen.
func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]transport.CartLine, error) {
	return cartLines(r.DB.WithContext(ctx), userID)
}

func cartLines(db *gorm.DB, userID uint) ([]transport.CartLine, error) {
	var lines []transport.CartLine
	if err := db.
		Model(&models.CartItem{}).
		Select("cart_items.id, cart_items.product_id, cart_items.quantity, products.name, products.price, products.image_url, products.price * cart_items.quantity AS line_total").
		Joins("JOIN products ON products.id = cart_items.product_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id ASC").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
