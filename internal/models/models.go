package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name          string    `gorm:"not null;index"            json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null"                  json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	StockQuantity int       `gorm:"not null;default:0"        json:"stock_quantity"`
	SoldCount     int       `gorm:"not null;default:0"        json:"sold_count"`
	CategoryID    uint      `gorm:"index"                     json:"category_id"`
	ImageURL      string    `json:"image_url"`
	IsFeatured    bool      `gorm:"default:false"             json:"is_featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Slug     string `gorm:"uniqueIndex;not null"     json:"slug"`
	ImageURL string `json:"image_url"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  uint `gorm:"not null;default:1;check:quantity>0"        json:"quantity"`
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Address struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	District   string `json:"district"`
	PostalCode string `json:"postal_code"`
}

type Order struct {
	ID            uint        `gorm:"primaryKey;autoIncrement"      json:"id"`
	Number        uuid.UUID   `gorm:"type:uuid;uniqueIndex"         json:"number"`
	UserID        uint        `gorm:"index;not null"                json:"user_id"`
	Status        OrderStatus `gorm:"not null"                      json:"status"`
	Address       Address     `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	PaymentMethod string      `gorm:"not null"                      json:"payment_method"`
	TotalAmount   float64     `gorm:"not null"                      json:"total_amount"`
	Discount      float64     `gorm:"not null;default:0"            json:"discount"`
	ShippingCost  float64     `gorm:"not null;default:0"            json:"shipping_cost"`
	FinalAmount   float64     `gorm:"not null"                      json:"final_amount"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID"            json:"items"`
}

// OrderItem keeps the unit price captured at purchase time so historical
// orders are decoupled from later price changes.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint    `gorm:"index;not null"            json:"order_id"`
	ProductID uint    `gorm:"not null"                  json:"product_id"`
	Quantity  uint    `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPrice float64 `gorm:"not null"                  json:"unit_price"`
	LineTotal float64 `gorm:"not null"                  json:"line_total"`
}

type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"                     json:"id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	Rating     int       `gorm:"not null"                                     json:"rating"`
	Comment    string    `json:"comment"`
	IsApproved bool      `gorm:"not null;default:false"                       json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Favorite struct {
	ID        uint `gorm:"primaryKey;autoIncrement"                  json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"user_id"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_fav_user_product" json:"product_id"`
}

type MovementType string

const (
	MovementIn            MovementType = "in"
	MovementOut           MovementType = "out"
	MovementAdjustmentIn  MovementType = "adjustment_in"
	MovementAdjustmentOut MovementType = "adjustment_out"
)

// StockMovement is an append-only ledger row; Product.StockQuantity is the
// running total maintained through the same transaction that appends here.
type StockMovement struct {
	ID           uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID    uint         `gorm:"index;not null"           json:"product_id"`
	Quantity     int          `gorm:"not null"                 json:"quantity"`
	MovementType MovementType `gorm:"not null"                 json:"movement_type"`
	Note         string       `json:"note"`
	CreatedAt    time.Time    `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"index"                    json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}
