package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/twende-org/mauzo/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductionInput struct {
	ProductID   uint
	ProducedQty decimal.Decimal
	TotalCost   decimal.Decimal
	Date        time.Time
}

// RecordProduction stores a production batch and credits the ledger with a
// PRODUCTION movement in the same transaction, so a batch row without its
// stock credit can never be observed.
func RecordProduction(db *gorm.DB, in ProductionInput) (*models.ProductionBatch, error) {
	if !in.ProducedQty.IsPositive() {
		return nil, fmt.Errorf("%w: produced quantity must be positive", ErrInvalidQuantity)
	}
	if in.TotalCost.IsNegative() {
		return nil, fmt.Errorf("%w: total cost must not be negative", ErrInvalidQuantity)
	}

	var product models.Product
	if err := db.Where("id = ?", in.ProductID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, in.ProductID)
		}
		return nil, storeErr(err)
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	for attempt := 0; attempt < adjustRetries(); attempt++ {
		batch := models.ProductionBatch{
			ProductID:   in.ProductID,
			ProducedQty: in.ProducedQty,
			TotalCost:   in.TotalCost,
			Date:        date,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&batch).Error; err != nil {
				return err
			}
			_, err := applyAdjustment(tx, StockAdjustment{
				ProductID: in.ProductID,
				Type:      models.MovementProduction,
				Quantity:  in.ProducedQty,
				Note:      "production batch",
			})
			return err
		})
		if err == nil {
			batch.Product = product
			return &batch, nil
		}
		if errors.Is(err, errVersionConflict) {
			continue
		}
		return nil, storeErr(err)
	}
	return nil, ErrConcurrencyConflict
}

func ListProduction(db *gorm.DB) ([]models.ProductionBatch, error) {
	var batches []models.ProductionBatch
	if err := db.Preload("Product").Order("date desc").Find(&batches).Error; err != nil {
		return nil, storeErr(err)
	}
	return batches, nil
}
