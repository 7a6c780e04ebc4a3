package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/transport"
)

func TestAdjustStockKeepsCounterAndLedgerInSync(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 0)

	_, err := env.Stock.Adjust(ctx(), transport.AdjustStockRequest{
		ProductID: p.ID, Quantity: 10, MovementType: models.MovementIn, Note: "initial delivery",
	})
	require.NoError(t, err)

	_, err = env.Stock.Adjust(ctx(), transport.AdjustStockRequest{
		ProductID: p.ID, Quantity: 3, MovementType: models.MovementAdjustmentOut, Note: "damaged",
	})
	require.NoError(t, err)

	report, err := env.Stock.Reconcile(ctx(), p.ID, false)
	require.NoError(t, err)
	require.Equal(t, 7, report.Counter)
	require.Equal(t, 7, report.LedgerSum)
	require.Zero(t, report.Drift)
	require.False(t, report.Repaired)
}

func TestAdjustStockRejectsGoingNegative(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 2)

	_, err := env.Stock.Adjust(ctx(), transport.AdjustStockRequest{
		ProductID: p.ID, Quantity: 5, MovementType: models.MovementOut,
	})
	require.True(t, errors.Is(err, ErrInsufficientStock))

	// rejected adjustment leaves no ledger row behind
	total, moves, err := env.Stock.Movements(ctx(), p.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(0), total)
	require.Empty(t, moves)

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, p.ID).Error)
	require.Equal(t, 2, prod.StockQuantity)
}

func TestAdjustStockValidation(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 2)

	_, err := env.Stock.Adjust(ctx(), transport.AdjustStockRequest{ProductID: p.ID, Quantity: 0, MovementType: models.MovementIn})
	require.True(t, errors.Is(err, ErrValidation))

	_, err = env.Stock.Adjust(ctx(), transport.AdjustStockRequest{ProductID: p.ID, Quantity: 1, MovementType: "misplaced"})
	require.True(t, errors.Is(err, ErrValidation))

	_, err = env.Stock.Adjust(ctx(), transport.AdjustStockRequest{ProductID: 404, Quantity: 1, MovementType: models.MovementIn})
	require.Error(t, err)
}

func TestReconcileDetectsAndRepairsDrift(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 0)

	_, err := env.Stock.Adjust(ctx(), transport.AdjustStockRequest{
		ProductID: p.ID, Quantity: 10, MovementType: models.MovementIn,
	})
	require.NoError(t, err)

	// counter edited behind the ledger's back
	require.NoError(t, env.DB.Model(&models.Product{}).Where("id = ?", p.ID).Update("stock_quantity", 42).Error)

	report, err := env.Stock.Reconcile(ctx(), p.ID, false)
	require.NoError(t, err)
	require.Equal(t, 32, report.Drift)
	require.False(t, report.Repaired)

	report, err = env.Stock.Reconcile(ctx(), p.ID, true)
	require.NoError(t, err)
	require.True(t, report.Repaired)

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, p.ID).Error)
	require.Equal(t, 10, prod.StockQuantity)
}

func TestOrderMovesShowUpInLedger(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("boot", 100, 10)

	_, err := env.Cart.AddToCart(ctx(), 1, transport.AddToCartRequest{ProductID: p.ID, Quantity: 4})
	require.NoError(t, err)
	_, err = env.Order.CreateOrder(ctx(), 1, transport.CreateOrderRequest{Address: testAddress(), PaymentMethod: "card"})
	require.NoError(t, err)

	total, moves, err := env.Stock.Movements(ctx(), p.ID, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, models.MovementOut, moves[0].MovementType)
	require.Equal(t, 4, moves[0].Quantity)
}
