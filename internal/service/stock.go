package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/modavista/storefront/internal/models"
	"github.com/modavista/storefront/internal/repo"
	"github.com/modavista/storefront/internal/transport"
	"github.com/modavista/storefront/internal/util"
)

type StockService struct {
	Repo *repo.GormRepo
}

func validMovement(t models.MovementType) bool {
	switch t {
	case models.MovementIn, models.MovementOut,
		models.MovementAdjustmentIn, models.MovementAdjustmentOut:
		return true
	}
	return false
}

func (s *StockService) Adjust(ctx context.Context, req transport.AdjustStockRequest) (*models.StockMovement, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if !validMovement(req.MovementType) {
		return nil, fmt.Errorf("%w: unknown movement type %q", ErrValidation, req.MovementType)
	}

	mv := &models.StockMovement{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		MovementType: req.MovementType,
		Note:         req.Note,
	}
	if err := s.Repo.AdjustStock(ctx, mv); err != nil {
		if errors.Is(err, repo.ErrInsufficientStock) {
			return nil, fmt.Errorf("%w: %v", ErrInsufficientStock, err)
		}
		return nil, err
	}
	return mv, nil
}

func (s *StockService) Movements(ctx context.Context, productID uint, page int) (int64, []models.StockMovement, error) {
	offset, limit := util.Calculate(page, util.DefaultPageSize)
	return s.Repo.StockMovements(ctx, productID, offset, limit)
}

type ReconcileReport struct {
	ProductID uint `json:"product_id"`
	Counter   int  `json:"counter"`
	LedgerSum int  `json:"ledger_sum"`
	Drift     int  `json:"drift"`
	Repaired  bool `json:"repaired"`
}

// Reconcile compares the mutable counter against the ledger sum and, when
// asked, resets the counter to the ledger's total. The ledger is the
// source of truth.
func (s *StockService) Reconcile(ctx context.Context, productID uint, repair bool) (*ReconcileReport, error) {
	prod, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	sum, err := s.Repo.LedgerSum(ctx, productID)
	if err != nil {
		return nil, err
	}

	report := &ReconcileReport{
		ProductID: productID,
		Counter:   prod.StockQuantity,
		LedgerSum: sum,
		Drift:     prod.StockQuantity - sum,
	}

	if repair && report.Drift != 0 {
		if err := s.Repo.SetStockQuantity(ctx, productID, sum); err != nil {
			return nil, err
		}
		report.Repaired = true
	}

	return report, nil
}
