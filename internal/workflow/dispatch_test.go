package workflow_test

import (
	"errors"
	"testing"

	"github.com/twende-org/mauzo/internal/models"
	"github.com/twende-org/mauzo/internal/workflow"

	"github.com/shopspring/decimal"
)

func TestOpenDispatchSnapshotsProduct(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID,
		GivenQty:  decimal.NewFromInt(20),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}

	if record.Status != models.DispatchOpen {
		t.Fatalf("status = %q, want open", record.Status)
	}
	if record.ProductName != "Barafu" || record.Unit != "pcs" {
		t.Fatalf("snapshot = %q/%q, want Barafu/pcs", record.ProductName, record.Unit)
	}
	requireDecimalEqual(t, decimal.NewFromInt(500), record.PricePerUnit, "price snapshot")
	requireDecimalEqual(t, decimal.Zero, record.SoldQty, "sold qty at open")
	requireDecimalEqual(t, decimal.Zero, record.CashCollected, "cash at open")

	// Opening must not touch the ledger.
	if got := movementCount(t, db, product.ID); got != 0 {
		t.Fatalf("movement count = %d, want 0", got)
	}
}

func TestOpenDispatchPriceOverride(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID:    product.ID,
		SellerID:     seller.ID,
		GivenQty:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(450),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}
	requireDecimalEqual(t, decimal.NewFromInt(450), record.PricePerUnit, "overridden price")
}

func TestOpenDispatchValidation(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	_, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID,
		GivenQty:  decimal.Zero,
	})
	if !errors.Is(err, workflow.ErrInvalidQuantity) {
		t.Fatalf("zero qty err = %v, want ErrInvalidQuantity", err)
	}

	_, err = workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID + 99,
		SellerID:  seller.ID,
		GivenQty:  decimal.NewFromInt(5),
	})
	if !errors.Is(err, workflow.ErrNotFound) {
		t.Fatalf("missing product err = %v, want ErrNotFound", err)
	}

	_, err = workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID + 99,
		GivenQty:  decimal.NewFromInt(5),
	})
	if !errors.Is(err, workflow.ErrNotFound) {
		t.Fatalf("missing seller err = %v, want ErrNotFound", err)
	}
}

// Full close-out: produce 100, dispatch 20 at 1000, melt 2. Sold is 18,
// cash is 18000, and the ledger drops by exactly the sold quantity.
func TestCloseDispatchComputesSoldAndDebitsLedger(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	if _, err := workflow.AdjustStock(db, workflow.StockAdjustment{
		ProductID: product.ID,
		Type:      models.MovementProduction,
		Quantity:  decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID:    product.ID,
		SellerID:     seller.ID,
		GivenQty:     decimal.NewFromInt(20),
		PricePerUnit: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}

	result, err := workflow.CloseDispatch(db, record.ID, decimal.NewFromInt(2), decimal.Zero)
	if err != nil {
		t.Fatalf("CloseDispatch: %v", err)
	}

	requireDecimalEqual(t, decimal.NewFromInt(18), result.SoldQty, "sold qty")
	requireDecimalEqual(t, decimal.NewFromInt(18000), result.CashCollected, "cash collected")
	requireDecimalEqual(t, decimal.NewFromInt(82), availableQty(t, db, product.ID), "available qty after close")

	var closed models.DispatchRecord
	if err := db.First(&closed, record.ID).Error; err != nil {
		t.Fatalf("reload dispatch: %v", err)
	}
	if closed.Status != models.DispatchClosed {
		t.Fatalf("status = %q, want closed", closed.Status)
	}
	if closed.ClosedAt == nil {
		t.Fatal("closed_at not set")
	}

	var movement models.StockMovement
	if err := db.Where("dispatch_id = ? AND type = ?", record.ID, models.MovementDispatch).First(&movement).Error; err != nil {
		t.Fatalf("close-out movement missing: %v", err)
	}
	requireDecimalEqual(t, decimal.NewFromInt(-18), movement.Delta, "close-out delta")
}

func TestCloseDispatchIdempotent(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID:    product.ID,
		SellerID:     seller.ID,
		GivenQty:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}

	if _, err := workflow.CloseDispatch(db, record.ID, decimal.Zero, decimal.Zero); err != nil {
		t.Fatalf("first close: %v", err)
	}

	_, err = workflow.CloseDispatch(db, record.ID, decimal.Zero, decimal.Zero)
	if !errors.Is(err, workflow.ErrDispatchClosed) {
		t.Fatalf("second close err = %v, want ErrDispatchClosed", err)
	}

	// No double debit.
	requireDecimalEqual(t, decimal.NewFromInt(-10), availableQty(t, db, product.ID), "available qty")
	if got := movementCount(t, db, product.ID); got != 1 {
		t.Fatalf("movement count = %d, want 1", got)
	}
}

func TestCloseDispatchInvalidMeltLeavesRecordOpen(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID,
		GivenQty:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}

	_, err = workflow.CloseDispatch(db, record.ID, decimal.NewFromInt(11), decimal.Zero)
	if !errors.Is(err, workflow.ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}

	var reloaded models.DispatchRecord
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload dispatch: %v", err)
	}
	if reloaded.Status != models.DispatchOpen {
		t.Fatalf("status = %q, want open", reloaded.Status)
	}
	if got := movementCount(t, db, product.ID); got != 0 {
		t.Fatalf("movement count = %d, want 0", got)
	}
}

func TestCloseDispatchNegativeInputsRejected(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID: product.ID,
		SellerID:  seller.ID,
		GivenQty:  decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}

	_, err = workflow.CloseDispatch(db, record.ID, decimal.NewFromInt(-1), decimal.Zero)
	if !errors.Is(err, workflow.ErrInvalidQuantity) {
		t.Fatalf("negative melted err = %v, want ErrInvalidQuantity", err)
	}
	_, err = workflow.CloseDispatch(db, record.ID, decimal.Zero, decimal.NewFromInt(-1))
	if !errors.Is(err, workflow.ErrInvalidQuantity) {
		t.Fatalf("negative returned err = %v, want ErrInvalidQuantity", err)
	}
}

func TestCloseDispatchNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := workflow.CloseDispatch(db, 12345, decimal.Zero, decimal.Zero)
	if !errors.Is(err, workflow.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// Returned units are recorded on the record but do not reduce sold
// quantity or revenue; unsellable returns come back via RETURN movements.
func TestCloseDispatchReturnedQtyInformational(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	seller := seedSeller(t, db, "Asha")

	record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
		ProductID:    product.ID,
		SellerID:     seller.ID,
		GivenQty:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("OpenDispatch: %v", err)
	}

	result, err := workflow.CloseDispatch(db, record.ID, decimal.NewFromInt(1), decimal.NewFromInt(4))
	if err != nil {
		t.Fatalf("CloseDispatch: %v", err)
	}

	requireDecimalEqual(t, decimal.NewFromInt(9), result.SoldQty, "sold qty ignores returned")
	requireDecimalEqual(t, decimal.NewFromInt(900), result.CashCollected, "cash ignores returned")

	var reloaded models.DispatchRecord
	if err := db.First(&reloaded, record.ID).Error; err != nil {
		t.Fatalf("reload dispatch: %v", err)
	}
	requireDecimalEqual(t, decimal.NewFromInt(4), reloaded.ReturnedQty, "returned qty stored")
}

func TestListDispatchesFilters(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Barafu", 500)
	other := seedProduct(t, db, "Juisi", 1000)
	asha := seedSeller(t, db, "Asha")
	juma := seedSeller(t, db, "Juma")

	mustOpen := func(p models.Product, s models.Seller) *models.DispatchRecord {
		record, err := workflow.OpenDispatch(db, workflow.OpenDispatchInput{
			ProductID: p.ID,
			SellerID:  s.ID,
			GivenQty:  decimal.NewFromInt(5),
		})
		if err != nil {
			t.Fatalf("OpenDispatch: %v", err)
		}
		return record
	}
	first := mustOpen(product, asha)
	mustOpen(product, juma)
	mustOpen(other, asha)

	if _, err := workflow.CloseDispatch(db, first.ID, decimal.Zero, decimal.Zero); err != nil {
		t.Fatalf("CloseDispatch: %v", err)
	}

	open, err := workflow.ListDispatches(db, workflow.DispatchFilter{Status: models.DispatchOpen})
	if err != nil {
		t.Fatalf("ListDispatches(open): %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open dispatches = %d, want 2", len(open))
	}

	byAsha, err := workflow.ListDispatches(db, workflow.DispatchFilter{SellerID: asha.ID})
	if err != nil {
		t.Fatalf("ListDispatches(seller): %v", err)
	}
	if len(byAsha) != 2 {
		t.Fatalf("dispatches for seller = %d, want 2", len(byAsha))
	}

	byProduct, err := workflow.ListDispatches(db, workflow.DispatchFilter{ProductID: other.ID, Status: models.DispatchOpen})
	if err != nil {
		t.Fatalf("ListDispatches(product): %v", err)
	}
	if len(byProduct) != 1 {
		t.Fatalf("open dispatches for product = %d, want 1", len(byProduct))
	}
}
