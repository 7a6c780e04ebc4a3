package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/modavista/storefront/internal/middleware/auth"
)

type Deps struct {
	CatalogHandler  *CatalogHTTP
	CartHandler     *CartHTTP
	OrderHandler    *OrderHTTP
	ReviewHandler   *ReviewHTTP
	FavoriteHandler *FavoriteHTTP
	StockHandler    *StockHTTP
	SettingsHandler *SettingsHTTP
	AuthHandler     *AuthHTTP
	SearchHandler   *SearchHTTP
	JWTSecret       []byte
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	mw := authmw.New(d.JWTSecret)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)

	products := e.Group("/catalog/products")
	products.GET("", d.CatalogHandler.GetProducts)
	products.GET("/featured", d.CatalogHandler.FeaturedProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.GET("/:id/reviews", d.ReviewHandler.ProductReviews)
	products.GET("/:id/rating", d.CatalogHandler.ProductRating)
	products.POST("/:id/reviews", d.ReviewHandler.AddReview, mw.RequireLogin)

	categories := e.Group("/catalog/categories")
	categories.GET("", d.CatalogHandler.GetCategories)
	categories.GET("/:slug", d.CatalogHandler.GetCategoryBySlug)

	e.GET("/search", d.SearchHandler.Search)

	cart := e.Group("/cart", mw.RequireLogin)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.PATCH("/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)
	cart.DELETE("", d.CartHandler.ClearCart)

	orders := e.Group("/orders", mw.RequireLogin)
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	favorites := e.Group("/favorites", mw.RequireLogin)
	favorites.GET("", d.FavoriteHandler.List)
	favorites.POST("/:id", d.FavoriteHandler.Add)
	favorites.DELETE("/:id", d.FavoriteHandler.Remove)

	admin := e.Group("/admin", mw.RequireAdmin)
	admin.POST("/products", d.CatalogHandler.CreateProduct)
	admin.PATCH("/products/:id", d.CatalogHandler.PatchProduct)
	admin.DELETE("/products/:id", d.CatalogHandler.DeleteProduct)
	admin.POST("/categories", d.CatalogHandler.CreateCategory)
	admin.PATCH("/categories/:id", d.CatalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", d.CatalogHandler.DeleteCategory)
	admin.GET("/orders", d.OrderHandler.ListAllOrders)
	admin.PATCH("/orders/:id/status", d.OrderHandler.UpdateStatus)
	admin.GET("/reviews/pending", d.ReviewHandler.PendingReviews)
	admin.GET("/products/:id/reviews", d.ReviewHandler.AllReviews)
	admin.PATCH("/reviews/:id", d.ReviewHandler.UpdateReview)
	admin.DELETE("/reviews/:id", d.ReviewHandler.DeleteReview)
	admin.POST("/stock", d.StockHandler.Adjust)
	admin.GET("/stock/movements", d.StockHandler.Movements)
	admin.POST("/stock/:id/reconcile", d.StockHandler.Reconcile)
	admin.GET("/settings", d.SettingsHandler.List)
	admin.GET("/settings/:key", d.SettingsHandler.Get)
	admin.PUT("/settings/:key", d.SettingsHandler.Put)
	admin.GET("/users", d.AuthHandler.ListUsers)
	admin.PATCH("/users/:id/role", d.AuthHandler.SetUserRole)
}
