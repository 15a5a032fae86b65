package workflow_test

import (
	"testing"
	"time"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/internal/workflow"

	"github.com/shopspring/decimal"
)

// A closed dispatch whose debit never reached the ledger (the accepted
// close-workflow gap) is repaired by the sweep, exactly once.
func TestReconcileReissuesMissingDebit(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	if _, err := workflow.AdjustStock(db, workflow.StockAdjustment{
		ProductID: product.ID,
		Type:      models.MovementProduction,
		Quantity:  decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	// Simulate the gap: record closed on disk, no matching movement.
	now := time.Now()
	orphan := models.DispatchRecord{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Unit:          product.Unit,
		SellerID:      seller.ID,
		GivenQty:      decimal.NewFromInt(20),
		MeltedQty:     decimal.NewFromInt(2),
		ReturnedQty:   decimal.Zero,
		SoldQty:       decimal.NewFromInt(18),
		PricePerUnit:  decimal.NewFromInt(500),
		CashCollected: decimal.NewFromInt(9000),
		Status:        models.DispatchClosed,
		OpenedAt:      now.Add(-time.Hour),
		ClosedAt:      &now,
	}
	if err := db.Create(&orphan).Error; err != nil {
		t.Fatalf("create orphan dispatch: %v", err)
	}

	reconciled, err := workflow.ReconcileDispatchDebits(db)
	if err != nil {
		t.Fatalf("ReconcileDispatchDebits: %v", err)
	}
	if reconciled != 1 {
		t.Fatalf("reconciled = %d, want 1", reconciled)
	}

	requireDecimalEqual(t, decimal.NewFromInt(32), availableQty(t, db, product.ID), "available qty after sweep")

	var movement models.StockMovement
	if err := db.Where("dispatch_id = ? AND type = ?", orphan.ID, models.MovementDispatch).First(&movement).Error; err != nil {
		t.Fatalf("reconciliation movement missing: %v", err)
	}
	requireDecimalEqual(t, decimal.NewFromInt(-18), movement.Delta, "reconciliation delta")

	// The movement reference marks the dispatch done; a second sweep is a no-op.
	reconciled, err = workflow.ReconcileDispatchDebits(db)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if reconciled != 0 {
		t.Fatalf("second sweep reconciled = %d, want 0", reconciled)
	}
	requireDecimalEqual(t, decimal.NewFromInt(32), availableQty(t, db, product.ID), "available qty unchanged")
}

func TestReconcileSkipsHealthyAndZeroSoldDispatches(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	if _, err := workflow.AdjustStock(db, workflow.StockAdjustment{
		ProductID: product.ID,
		Type:      models.MovementProduction,
		Quantity:  decimal.NewFromInt(50),
	}); err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	// Healthy close: debit lands normally.
	healthy, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID,
		GivenQty:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}
	if _, err := workflow.CloseDispatch(db, healthy.ID, decimal.Zero, decimal.Zero); err != nil {
		t.Fatalf("CloseDispatch: %v", err)
	}

	// Fully melted close: nothing sold, nothing to debit.
	melted, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID,
		GivenQty:  decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}
	if _, err := workflow.CloseDispatch(db, melted.ID, decimal.NewFromInt(5), decimal.Zero); err != nil {
		t.Fatalf("CloseDispatch fully melted: %v", err)
	}

	reconciled, err := workflow.ReconcileDispatchDebits(db)
	if err != nil {
		t.Fatalf("ReconcileDispatchDebits: %v", err)
	}
	if reconciled != 0 {
		t.Fatalf("reconciled = %d, want 0", reconciled)
	}
	requireDecimalEqual(t, decimal.NewFromInt(40), availableQty(t, db, product.ID), "available qty")
}
