package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/twende-org/mauzo/config"
	"github.com/twende-org/mauzo/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OpenDispatchInput struct {
	ProductID uint
	SellerID  uint
	GivenQty  decimal.Decimal
	// PricePerUnit overrides the catalog price for this dispatch when set;
	// zero means "use the product's current price". Either way the price is
	// frozen on the record at open time.
	PricePerUnit decimal.Decimal
}

// OpenDispatch issues stock to a seller. Product name, unit and price are
// snapshotted onto the record. No stock is debited here; the ledger moves
// at close-out only.
func OpenDispatch(db *gorm.DB, in OpenDispatchInput) (*models.DispatchRecord, error) {
	if !in.GivenQty.IsPositive() {
		return nil, fmt.Errorf("%w: given quantity must be positive", ErrInvalidQuantity)
	}
	if in.PricePerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: price per unit must not be negative", ErrInvalidQuantity)
	}

	var product models.Product
	if err := db.Where("id = ? AND is_active = ?", in.ProductID, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, in.ProductID)
		}
		return nil, storeErr(err)
	}

	var seller models.Seller
	if err := db.Where("id = ? AND is_active = ?", in.SellerID, true).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: seller %d", ErrNotFound, in.SellerID)
		}
		return nil, storeErr(err)
	}

	price := in.PricePerUnit
	if price.IsZero() {
		price = product.Price
	}

	record := models.DispatchRecord{
		ProductID:     product.ID,
		ProductName:   product.Name,
		Unit:          product.Unit,
		SellerID:      seller.ID,
		GivenQty:      in.GivenQty,
		MeltedQty:     decimal.Zero,
		ReturnedQty:   decimal.Zero,
		SoldQty:       decimal.Zero,
		PricePerUnit:  price,
		CashCollected: decimal.Zero,
		Status:        models.DispatchOpen,
		OpenedAt:      time.Now(),
	}
	if err := db.Create(&record).Error; err != nil {
		return nil, storeErr(err)
	}
	record.Seller = seller
	return &record, nil
}

type CloseDispatchResult struct {
	SoldQty       decimal.Decimal `json:"sold_qty"`
	CashCollected decimal.Decimal `json:"cash_collected"`
}

// CloseDispatch settles an open dispatch: sold = max(0, given - melted),
// cash = sold * price (price as frozen at open). Returned units are
// recorded but do not reduce sold quantity; unsellable returns are entered
// as RETURN movements from the stock screen.
//
// The record update and the ledger debit touch two rows that are not
// committed as one unit: the record is closed first, then the debit is
// issued with the dispatch id as its movement reference. If the debit
// fails the record stays closed and ErrLedgerDebitPending is returned;
// ReconcileDispatchDebits re-issues missing debits later.
func CloseDispatch(db *gorm.DB, id uint, meltedQty, returnedQty decimal.Decimal) (*CloseDispatchResult, error) {
	var record models.DispatchRecord
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: dispatch %d", ErrNotFound, id)
		}
		return nil, storeErr(err)
	}
	if record.Status == models.DispatchClosed {
		return nil, fmt.Errorf("%w: dispatch %d", ErrDispatchClosed, id)
	}

	if meltedQty.IsNegative() || returnedQty.IsNegative() {
		return nil, fmt.Errorf("%w: melted and returned quantities must not be negative", ErrInvalidQuantity)
	}
	if meltedQty.GreaterThan(record.GivenQty) {
		return nil, fmt.Errorf("%w: melted quantity exceeds given quantity", ErrInvalidQuantity)
	}

	soldQty := record.GivenQty.Sub(meltedQty)
	if soldQty.IsNegative() {
		soldQty = decimal.Zero
	}
	cashCollected := soldQty.Mul(record.PricePerUnit)
	now := time.Now()

	// Conditional on status so a racing second closer loses cleanly.
	res := db.Model(&models.DispatchRecord{}).
		Where("id = ? AND status = ?", id, models.DispatchOpen).
		Updates(map[string]interface{}{
			"melted_qty":     meltedQty,
			"returned_qty":   returnedQty,
			"sold_qty":       soldQty,
			"cash_collected": cashCollected,
			"status":         models.DispatchClosed,
			"closed_at":      now,
		})
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: dispatch %d", ErrDispatchClosed, id)
	}

	// Re-read so the debit uses the committed sold quantity.
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, storeErr(err)
	}
	result := &CloseDispatchResult{SoldQty: record.SoldQty, CashCollected: record.CashCollected}

	if record.SoldQty.IsPositive() {
		_, err := AdjustStock(db, StockAdjustment{
			ProductID:  record.ProductID,
			Type:       models.MovementDispatch,
			Quantity:   record.SoldQty,
			DispatchID: &record.ID,
			Note:       "dispatch close-out",
		})
		if err != nil {
			config.LogError(config.GetLogger(), "workflow", "CloseDispatch",
				"stock debit failed after close; reconciliation required",
				map[string]interface{}{"dispatch_id": record.ID, "sold_qty": record.SoldQty.String()}, err)
			return result, fmt.Errorf("%w: %v", ErrLedgerDebitPending, err)
		}
	}
	return result, nil
}

type DispatchFilter struct {
	Status    string
	SellerID  uint
	ProductID uint
}

func ListDispatches(db *gorm.DB, filter DispatchFilter) ([]models.DispatchRecord, error) {
	query := db.Preload("Seller").Order("opened_at desc")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.SellerID != 0 {
		query = query.Where("seller_id = ?", filter.SellerID)
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}

	var records []models.DispatchRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, storeErr(err)
	}
	return records, nil
}
