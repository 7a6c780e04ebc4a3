package transport

import "github.com/modavista/storefront/internal/models"

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// ProductFilter carries the storefront's catalog filter state. Zero price
// bounds mean "unbounded"; Sort defaults to newest.
type ProductFilter struct {
	Query      string  `query:"q"`
	CategoryID uint    `query:"category_id"`
	MinPrice   float64 `query:"min_price"`
	MaxPrice   float64 `query:"max_price"`
	Sort       string  `query:"sort"`
	Page       int     `query:"page"`
	PageSize   int     `query:"size"`
}

type ProductPage struct {
	Items      []models.Product `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int64            `json:"total"`
}

type CreateProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	StockQuantity int      `json:"stock_quantity"`
	CategoryID    uint     `json:"category_id"`
	ImageURL      string   `json:"image_url"`
	IsFeatured    bool     `json:"is_featured"`
}

type PatchProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	CategoryID    *uint    `json:"category_id"`
	ImageURL      *string  `json:"image_url"`
	IsFeatured    *bool    `json:"is_featured"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type PatchCategoryRequest struct {
	Name     *string `json:"name"`
	ImageURL *string `json:"image_url"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity uint `json:"quantity"`
}

// CartLine is a cart row joined with the current product snapshot; the
// displayed price always reflects the product's present price.
type CartLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  uint    `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

type Cart struct {
	Items []CartLine `json:"items"`
	Total float64    `json:"total"`
}

type CreateOrderRequest struct {
	Address       models.Address `json:"shipping_address"`
	PaymentMethod string         `json:"payment_method"`
	ShippingCost  float64        `json:"shipping_cost"`
	Discount      float64        `json:"discount"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type PatchReviewRequest struct {
	Rating     *int    `json:"rating"`
	Comment    *string `json:"comment"`
	IsApproved *bool   `json:"is_approved"`
}

type AdjustStockRequest struct {
	ProductID    uint                `json:"product_id"`
	Quantity     int                 `json:"quantity"`
	MovementType models.MovementType `json:"movement_type"`
	Note         string              `json:"note"`
}

type FavoriteLine struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
