package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/transport"
)

// AddFavorite is idempotent: re-adding an existing pair is a no-op.
func (r *GormRepo) AddFavorite(ctx context.Context, fav *models.Favorite) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(fav).Error
}

func (r *GormRepo) RemoveFavorite(ctx context.Context, userID, productID uint) error {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListFavorites(ctx context.Context, userID uint) ([]transport.FavoriteLine, error) {
	var lines []transport.FavoriteLine
	if err := r.DB.WithContext(ctx).
		Model(&models.Favorite{}).
		Select("favorites.id, favorites.product_id, products.name, products.price, products.image_url").
		Joins("JOIN products ON products.id = favorites.product_id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.id DESC").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
