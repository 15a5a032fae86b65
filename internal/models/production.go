package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionBatch records one production run. Creating a batch also credits
// the ledger with a PRODUCTION movement for the same quantity.
type ProductionBatch struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ProductID   uint            `gorm:"index;not null" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"product"`
	ProducedQty decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"produced_qty"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"total_cost"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}
