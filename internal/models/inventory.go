package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementType string

const (
	MovementProduction MovementType = "PRODUCTION"
	MovementDispatch   MovementType = "DISPATCH"
	MovementReturn     MovementType = "RETURN"
	MovementMelt       MovementType = "MELT"
)

func (t MovementType) Valid() bool {
	switch t {
	case MovementProduction, MovementDispatch, MovementReturn, MovementMelt:
		return true
	}
	return false
}

// Delta maps a movement quantity to the signed change applied to the ledger.
// PRODUCTION and RETURN add stock; DISPATCH and MELT remove it.
func (t MovementType) Delta(qty decimal.Decimal) decimal.Decimal {
	if t == MovementProduction || t == MovementReturn {
		return qty
	}
	return qty.Neg()
}

// InventoryEntry holds the current on-hand quantity for one product.
// It is only ever mutated through workflow.AdjustStock; Version backs the
// optimistic write check there.
type InventoryEntry struct {
	ProductID    uint            `gorm:"primaryKey" json:"product_id"`
	AvailableQty decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"available_qty"`
	Version      uint            `gorm:"not null;default:0" json:"-"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// StockMovement is the append-only ledger row. Rows are never updated or
// deleted; the entry's available_qty must always equal the sum of deltas.
type StockMovement struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ProductID  uint            `gorm:"index:idx_movement_product_date,priority:1;not null" json:"product_id"`
	Type       MovementType    `gorm:"size:20;not null" json:"type"`
	Quantity   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Delta      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"delta"`
	DispatchID *uint           `gorm:"index" json:"dispatch_id"`
	Note       string          `gorm:"size:255" json:"note"`
	CreatedAt  time.Time       `gorm:"index:idx_movement_product_date,priority:2" json:"created_at"`
}
