package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/modavista/storefront/internal/config"
	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/service"
	"github.com/modavista/storefront/internal/tokens"
)

var testSecret = []byte("test-secret")

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	r := repo.New(db)
	e := echo.New()
	Register(e, &Deps{
		CatalogHandler:  &CatalogHTTP{Svc: &service.CatalogService{Repo: r}},
		CartHandler:     &CartHTTP{Svc: &service.CartService{Repo: r}},
		OrderHandler:    &OrderHTTP{Svc: &service.OrderService{Repo: r}},
		ReviewHandler:   &ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		FavoriteHandler: &FavoriteHTTP{Svc: &service.FavoriteService{Repo: r}},
		StockHandler:    &StockHTTP{Svc: &service.StockService{Repo: r}},
		SettingsHandler: &SettingsHTTP{Svc: &service.SettingsService{Repo: r}},
		AuthHandler: &AuthHTTP{Svc: &service.AuthService{
			Repo: r, JWTSecret: testSecret, RefreshSecret: []byte("test-refresh"),
		}},
		SearchHandler: &SearchHTTP{},
		JWTSecret:     testSecret,
	})
	return e, db
}

func do(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	tok, err := tokens.SignAccessToken(userID, role, testSecret)
	require.NoError(t, err)
	return tok
}

func TestProductListIsPublic(t *testing.T) {
	e, db := newTestServer(t)
	require.NoError(t, db.Create(&models.Product{Name: "boot", Price: 100, StockQuantity: 5}).Error)

	rec := do(e, http.MethodGet, "/catalog/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items      []models.Product `json:"items"`
		TotalPages int              `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, 1, page.TotalPages)
}

func TestCartRequiresLogin(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/cart", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectPlainUsers(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodPost, "/admin/products", signToken(t, 1, "user"), `{"name":"x","price":1}`)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCartFlowOverHTTP(t *testing.T) {
	e, db := newTestServer(t)
	p := &models.Product{Name: "boot", Price: 100, StockQuantity: 5}
	require.NoError(t, db.Create(p).Error)

	token := signToken(t, 1, "user")

	rec := do(e, http.MethodPost, "/cart", token, `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/cart", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cart struct {
		Total float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cart))
	require.Equal(t, float64(200), cart.Total)
}

func TestCheckoutOverHTTP(t *testing.T) {
	e, db := newTestServer(t)
	require.NoError(t, db.Create(&models.Product{Name: "boot", Price: 100, StockQuantity: 5}).Error)

	token := signToken(t, 1, "user")

	rec := do(e, http.MethodPost, "/cart", token, `{"product_id":1,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := `{"shipping_address":{"full_name":"Test User","line1":"Main St 1","city":"Istanbul"},"payment_method":"card"}`
	rec = do(e, http.MethodPost, "/orders", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	require.Equal(t, models.OrderStatusPending, order.Status)

	// an empty cart cannot be checked out again
	rec = do(e, http.MethodPost, "/orders", token, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminStatusUpdateOverHTTP(t *testing.T) {
	e, db := newTestServer(t)
	require.NoError(t, db.Create(&models.Product{Name: "boot", Price: 100, StockQuantity: 5}).Error)

	userToken := signToken(t, 1, "user")
	adminToken := signToken(t, 2, "admin")

	rec := do(e, http.MethodPost, "/cart", userToken, `{"product_id":1,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := `{"shipping_address":{"full_name":"Test User","line1":"Main St 1","city":"Istanbul"},"payment_method":"card"}`
	rec = do(e, http.MethodPost, "/orders", userToken, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))

	rec = do(e, http.MethodPatch, "/admin/orders/1/status", adminToken, `{"status":"processing"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPatch, "/admin/orders/1/status", adminToken, `{"status":"delivered"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidationDetailReachesClient(t *testing.T) {
	e, db := newTestServer(t)
	require.NoError(t, db.Create(&models.Product{Name: "boot", Price: 100, StockQuantity: 5}).Error)

	token := signToken(t, 1, "user")

	rec := do(e, http.MethodPost, "/cart", token, `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPatch, "/cart/1", token, `{"quantity":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "quantity must be >= 1")
}

func TestCategoryPatchKeepsImageOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	adminToken := signToken(t, 1, "admin")

	rec := do(e, http.MethodPost, "/admin/categories", adminToken, `{"name":"Shoes","image_url":"/img/shoes.png"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPatch, "/admin/categories/1", adminToken, `{"name":"Boots"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var cat models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	require.Equal(t, "boots", cat.Slug)
	require.Equal(t, "/img/shoes.png", cat.ImageURL)

	// unknown id is a 404, not an insert
	rec = do(e, http.MethodPatch, "/admin/categories/99", adminToken, `{"name":"Hats"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchUnconfiguredReturns503(t *testing.T) {
	e, _ := newTestServer(t)

	rec := do(e, http.MethodGet, "/search?q=boot", "", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSettingsRoundTripOverHTTP(t *testing.T) {
	e, _ := newTestServer(t)
	adminToken := signToken(t, 1, "admin")

	rec := do(e, http.MethodPut, "/admin/settings/store_name", adminToken, `{"value":"Modavista"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/admin/settings/store_name", adminToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var setting models.Setting
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &setting))
	require.Equal(t, "Modavista", setting.Value)
}
