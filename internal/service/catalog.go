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

type CatalogService struct {
	Repo *repo.GormRepo
}

// ListProducts resolves the filter into a page of products plus a total
// page count. Zero matches still report one page so the storefront never
// renders page 0.
func (s *CatalogService) ListProducts(ctx context.Context, f transport.ProductFilter) (*transport.ProductPage, error) {
	if f.PageSize < 1 {
		f.PageSize = util.DefaultPageSize
	}
	offset, limit := util.Calculate(f.Page, f.PageSize)

	total, items, err := s.Repo.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return nil, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}

	return &transport.ProductPage{
		Items:      items,
		Page:       page,
		TotalPages: util.TotalPages(total, limit),
		Total:      total,
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.FeaturedProducts(ctx, util.WidgetPageSize)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	prod := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		IsFeatured:    req.IsFeatured,
	}
	if err := s.Repo.CreateProduct(ctx, prod); err != nil {
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && *req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}
	return s.Repo.PatchProduct(ctx, req, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	return s.Repo.DeleteProduct(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	cat, err := s.Repo.CategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %q", ErrNotFound, slug)
		}
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	cat := &models.Category{
		Name:     req.Name,
		Slug:     util.Slugify(req.Name),
		ImageURL: req.ImageURL,
	}
	if cat.Slug == "" {
		return nil, fmt.Errorf("%w: name yields empty slug", ErrValidation)
	}

	if err := s.Repo.CreateCategory(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory patches only the fields present in the request; a new
// name re-derives the slug. Unknown ids surface as not-found, never as
// an insert.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req transport.PatchCategoryRequest) (*models.Category, error) {
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name required", ErrValidation)
		}
		if util.Slugify(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name yields empty slug", ErrValidation)
		}
	}
	return s.Repo.PatchCategory(ctx, req, id)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Repo.DeleteCategory(ctx, id)
}

func (s *CatalogService) AverageRating(ctx context.Context, productID uint) (float64, error) {
	return s.Repo.AverageRating(ctx, productID)
}
