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

const defaultAdjustRetries = 5

// StockAdjustment is one intended change to a product's ledger.
type StockAdjustment struct {
	ProductID  uint
	Type       models.MovementType
	Quantity   decimal.Decimal
	DispatchID *uint
	Note       string
}

// AdjustStock applies one adjustment as a single atomic unit: the entry
// update and the movement row commit together or not at all. Concurrent
// adjustments to the same product serialize on the entry's version column;
// the whole unit is retried a bounded number of times before giving up
// with ErrConcurrencyConflict, leaving nothing behind.
//
// A negative resulting quantity is not rejected here (the caller owns
// over-dispatch protection); it is logged so it does not pass silently.
func AdjustStock(db *gorm.DB, adj StockAdjustment) (*models.StockMovement, error) {
	if !adj.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown movement type %q", ErrInvalidQuantity, adj.Type)
	}
	if adj.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: movement quantity must not be negative", ErrInvalidQuantity)
	}

	for attempt := 0; attempt < adjustRetries(); attempt++ {
		var movement *models.StockMovement
		err := db.Transaction(func(tx *gorm.DB) error {
			m, err := applyAdjustment(tx, adj)
			if err != nil {
				return err
			}
			movement = m
			return nil
		})
		if err == nil {
			return movement, nil
		}
		if errors.Is(err, errVersionConflict) {
			continue
		}
		return nil, storeErr(err)
	}
	return nil, ErrConcurrencyConflict
}

// applyAdjustment performs one attempt inside the caller's transaction.
// Returns errVersionConflict when a concurrent writer got there first.
func applyAdjustment(tx *gorm.DB, adj StockAdjustment) (*models.StockMovement, error) {
	var entry models.InventoryEntry
	err := tx.Where("product_id = ?", adj.ProductID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.InventoryEntry{
			ProductID:    adj.ProductID,
			AvailableQty: decimal.Zero,
			LastUpdated:  time.Now(),
		}
		if err := tx.Create(&entry).Error; err != nil {
			// Two first-ever adjustments can both miss the read and race the
			// create; the loser's duplicate key is just another write conflict
			// and the retry will find the winner's row.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, errVersionConflict
			}
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	delta := adj.Type.Delta(adj.Quantity)
	newQty := entry.AvailableQty.Add(delta)

	res := tx.Model(&models.InventoryEntry{}).
		Where("product_id = ? AND version = ?", adj.ProductID, entry.Version).
		Updates(map[string]interface{}{
			"available_qty": newQty,
			"version":       entry.Version + 1,
			"last_updated":  time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errVersionConflict
	}

	movement := &models.StockMovement{
		ProductID:  adj.ProductID,
		Type:       adj.Type,
		Quantity:   adj.Quantity,
		Delta:      delta,
		DispatchID: adj.DispatchID,
		Note:       adj.Note,
	}
	if err := tx.Create(movement).Error; err != nil {
		return nil, err
	}

	if newQty.IsNegative() {
		config.GetLogger().WithField("product_id", adj.ProductID).
			WithField("available_qty", newQty.String()).
			Warn("stock adjustment left available quantity negative")
	}
	return movement, nil
}

// GetEntry returns the ledger entry for a product, materializing a zero
// entry on first read so subsequent reads are stable.
func GetEntry(db *gorm.DB, productID uint) (*models.InventoryEntry, error) {
	entry := models.InventoryEntry{ProductID: productID}
	err := db.Where("product_id = ?", productID).
		Attrs(models.InventoryEntry{AvailableQty: decimal.Zero, LastUpdated: time.Now()}).
		FirstOrCreate(&entry).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &entry, nil
}

// StockStatus is one product's ledger position for the inventory listing.
// OpenDispatchQty surfaces stock already issued to sellers but not yet
// debited, since debits only happen at close-out.
type StockStatus struct {
	ProductID       uint            `json:"product_id"`
	ProductName     string          `json:"product_name"`
	Unit            string          `json:"unit"`
	AvailableQty    decimal.Decimal `json:"available_qty"`
	OpenDispatchQty decimal.Decimal `json:"open_dispatch_qty"`
	LastUpdated     time.Time       `json:"last_updated"`
}

func ListStock(db *gorm.DB) ([]StockStatus, error) {
	var entries []models.InventoryEntry
	if err := db.Order("product_id").Find(&entries).Error; err != nil {
		return nil, storeErr(err)
	}

	var products []models.Product
	if err := db.Unscoped().Find(&products).Error; err != nil {
		return nil, storeErr(err)
	}
	names := make(map[uint]models.Product, len(products))
	for _, p := range products {
		names[p.ID] = p
	}

	type openRow struct {
		ProductID uint
		Total     decimal.Decimal
	}
	var open []openRow
	err := db.Model(&models.DispatchRecord{}).
		Select("product_id, COALESCE(SUM(given_qty), 0) AS total").
		Where("status = ?", models.DispatchOpen).
		Group("product_id").
		Scan(&open).Error
	if err != nil {
		return nil, storeErr(err)
	}
	openQty := make(map[uint]decimal.Decimal, len(open))
	for _, r := range open {
		openQty[r.ProductID] = r.Total
	}

	statuses := make([]StockStatus, 0, len(entries))
	for _, e := range entries {
		s := StockStatus{
			ProductID:       e.ProductID,
			AvailableQty:    e.AvailableQty,
			OpenDispatchQty: decimal.Zero,
			LastUpdated:     e.LastUpdated,
		}
		if p, ok := names[e.ProductID]; ok {
			s.ProductName = p.Name
			s.Unit = p.Unit
		}
		if q, ok := openQty[e.ProductID]; ok {
			s.OpenDispatchQty = q
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func adjustRetries() int {
	if config.AppConfig != nil && config.AppConfig.Ledger.AdjustRetries > 0 {
		return config.AppConfig.Ledger.AdjustRetries
	}
	return defaultAdjustRetries
}
