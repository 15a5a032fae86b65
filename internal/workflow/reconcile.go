package workflow

import (
	"github.com/twende-org/mauzo/config"
	"github.com/twende-org/mauzo/internal/models"

	"gorm.io/gorm"
)

// ReconcileDispatchDebits finds closed dispatches whose sold quantity was
// never subtracted from stock (no DISPATCH movement references them) and
// re-issues the debit. The movement's dispatch reference is the done
// marker, so the sweep is safe to run repeatedly.
func ReconcileDispatchDebits(db *gorm.DB) (int, error) {
	var pending []models.DispatchRecord
	err := db.Where("status = ? AND sold_qty > 0", models.DispatchClosed).
		Where("NOT EXISTS (SELECT 1 FROM stock_movements m WHERE m.dispatch_id = dispatch_records.id AND m.type = ?)",
			models.MovementDispatch).
		Find(&pending).Error
	if err != nil {
		return 0, storeErr(err)
	}

	reconciled := 0
	for i := range pending {
		record := pending[i]
		_, err := AdjustStock(db, StockAdjustment{
			ProductID:  record.ProductID,
			Type:       models.MovementDispatch,
			Quantity:   record.SoldQty,
			DispatchID: &record.ID,
			Note:       "reconciliation: missing close-out debit",
		})
		if err != nil {
			config.LogError(config.GetLogger(), "workflow", "ReconcileDispatchDebits",
				"failed to re-issue missing debit",
				map[string]interface{}{"dispatch_id": record.ID}, err)
			continue
		}
		config.GetLogger().WithField("dispatch_id", record.ID).
			WithField("sold_qty", record.SoldQty.String()).
			Info("re-issued missing close-out debit")
		reconciled++
	}
	return reconciled, nil
}
