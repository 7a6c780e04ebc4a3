package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/transport"
)

func testAddress() models.Address {
	return models.Address{FullName: "Test User", Phone: "5550000", Line1: "Main St 1", City: "Istanbul"}
}

func TestCreateOrderSnapshotsPricesAndDecrementsStock(t *testing.T) {
	env := newTestEnv(t)
	p1 := env.createProduct("boot", 100, 10)
	p2 := env.createProduct("sock", 50, 4)

	_, err := env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p1.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p2.ID, Quantity: 1})
	require.NoError(t, err)

	order, err := env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{
		Address:       testAddress(),
		PaymentMethod: "card",
		ShippingCost:  20,
		Discount:      10,
	})
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, float64(250), order.TotalAmount)
	require.Equal(t, float64(260), order.FinalAmount)
	require.Len(t, order.Items, 2)
	require.Equal(t, float64(100), order.Items[0].UnitPrice)
	require.NotEmpty(t, order.Number)

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, p1.ID).Error)
	require.Equal(t, 8, prod.StockQuantity)
	require.Equal(t, 2, prod.SoldCount)

	// cart cleared after checkout
	cart, err := env.Cart.GetCart(ctx(), 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// ledger rows appended per item
	var moves []models.StockMovement
	require.NoError(t, env.DB.Find(&moves).Error)
	require.Len(t, moves, 2)
	require.Equal(t, models.MovementOut, moves[0].MovementType)
}

func TestCreateOrderPriceFrozenAtPurchase(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 10)

	_, err := env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	order, err := env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{Address: testAddress(), PaymentMethod: "card"})
	require.NoError(t, err)

	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("price", 999).Error)

	got, err := env.Order.GetOrder(ctx(), order.ID, 1, false)
	require.NoError(t, err)
	require.Equal(t, float64(100), got.Items[0].UnitPrice)
}

func TestCreateOrderInsufficientStockRollsBackEverything(t *testing.T) {
	env := newTestEnv(t)
	p1 := env.createProduct("boot", 100, 10)
	p2 := env.createProduct("rare", 50, 1)

	_, err := env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p1.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p2.ID, Quantity: 5})
	require.NoError(t, err)

	_, err = env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{Address: testAddress(), PaymentMethod: "card"})
	require.True(t, errors.Is(err, ErrInsufficientStock))

	// no order and no order items survive the failure
	var orderCount, itemCount int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, env.DB.Model(&models.OrderItem{}).Count(&itemCount).Error)
	require.Equal(t, int64(0), orderCount)
	require.Equal(t, int64(0), itemCount)

	// the first item's stock update was rolled back too
	var prod models.Product
	require.NoError(t, env.DB.First(&prod, p1.ID).Error)
	require.Equal(t, 10, prod.StockQuantity)
	require.Equal(t, 0, prod.SoldCount)

	// cart untouched
	cart, err := env.Cart.GetCart(ctx(), 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestCreateOrderRejectsDiscountAboveTotal(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 10)

	_, err := env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	_, err = env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{
		Address:       testAddress(),
		PaymentMethod: "card",
		Discount:      500,
	})
	require.True(t, errors.Is(err, ErrValidation))

	// nothing was persisted and the cart survives
	var orderCount int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orderCount).Error)
	require.Equal(t, int64(0), orderCount)

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, p.ID).Error)
	require.Equal(t, 10, prod.StockQuantity)

	cart, err := env.Cart.GetCart(ctx(), 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{Address: testAddress(), PaymentMethod: "card"})
	require.True(t, errors.Is(err, ErrValidation))
}

func TestCreateOrderRequiresAddress(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{PaymentMethod: "card"})
	require.True(t, errors.Is(err, ErrValidation))
}

func makeOrder(t *testing.T, env *testEnv, userID uint) *models.Order {
	t.Helper()
	p := env.createProduct("thing", 10, 100)
	_, err := env.Cart.AddToCart(ctx(), userID, transport.AddToCartRequest{ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	order, err := env.Order.CreateOrder(ctx(), userID, transport.CreateOrderRequest{Address: testAddress(), PaymentMethod: "card"})
	require.NoError(t, err)
	return order
}

func TestStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	order := makeOrder(t, env, 1)

	order, err := env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusProcessing, order.Status)

	order, err = env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	order, err = env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusDelivered, order.Status)
}

func TestStatusTransitionRejectsIllegal(t *testing.T) {
	env := newTestEnv(t)
	order := makeOrder(t, env, 1)

	// pending cannot go straight to shipped
	_, err := env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatusShipped)
	require.True(t, errors.Is(err, ErrIllegalTransition))

	// delivered is terminal
	for _, next := range []models.OrderStatus{models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered} {
		_, err = env.Order.UpdateStatus(ctx(), order.ID, next)
		require.NoError(t, err)
	}
	_, err = env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatusCancelled)
	require.True(t, errors.Is(err, ErrIllegalTransition))
}

func TestStatusUpdateRejectsUnknownValue(t *testing.T) {
	env := newTestEnv(t)
	order := makeOrder(t, env, 1)

	_, err := env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatus("refunded"))
	require.True(t, errors.Is(err, ErrValidation))
}

func TestCancelRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 10)

	_, err := env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	order, err := env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{Address: testAddress(), PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = env.Order.UpdateStatus(ctx(), order.ID, models.OrderStatusCancelled)
	require.NoError(t, err)

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, p.ID).Error)
	require.Equal(t, 10, prod.StockQuantity)
	require.Equal(t, 0, prod.SoldCount)

	// compensating "in" row lands in the ledger
	var moves []models.StockMovement
	require.NoError(t, env.DB.Order("id ASC").Find(&moves).Error)
	require.Len(t, moves, 2)
	require.Equal(t, models.MovementOut, moves[0].MovementType)
	require.Equal(t, models.MovementIn, moves[1].MovementType)
}

func TestGetOrderHidesOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	order := makeOrder(t, env, 1)

	_, err := env.Order.GetOrder(ctx(), order.ID, 2, false)
	require.Error(t, err)

	// admin can read anyone's order
	got, err := env.Order.GetOrder(ctx(), order.ID, 2, true)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}
