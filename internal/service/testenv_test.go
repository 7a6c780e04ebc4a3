package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/config"
	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
)

type testEnv struct {
	T       *testing.T
	DB      *gorm.DB
	Repo    *repo.GormRepo
	Catalog *CatalogService
	Cart    *CartService
	Order   *OrderService
	Review  *ReviewService
	Stock   *StockService
	Fav     *FavoriteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	r := repo.New(db)
	return &testEnv{
		T:       t,
		DB:      db,
		Repo:    r,
		Catalog: &CatalogService{Repo: r},
		Cart:    &CartService{Repo: r},
		Order:   &OrderService{Repo: r},
		Review:  &ReviewService{Repo: r},
		Stock:   &StockService{Repo: r},
		Fav:     &FavoriteService{Repo: r},
	}
}

func (env *testEnv) createProduct(name string, price float64, stock int) *models.Product {
	env.T.Helper()
	p := &models.Product{Name: name, Price: price, StockQuantity: stock}
	require.NoError(env.T, env.DB.Create(p).Error)
	return p
}

func ctx() context.Context { return context.Background() }
