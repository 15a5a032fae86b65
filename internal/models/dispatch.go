package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DispatchOpen   = "open"
	DispatchClosed = "closed"
)

// DispatchRecord tracks one seller's allotment of a product from issue to
// close-out. Product name, unit and price are snapshotted at open time so
// later catalog edits do not rewrite historic sales.
type DispatchRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ProductID     uint            `gorm:"index;not null" json:"product_id"`
	ProductName   string          `gorm:"size:150;not null" json:"product_name"`
	Unit          string          `gorm:"size:20;not null" json:"unit"`
	SellerID      uint            `gorm:"index;not null" json:"seller_id"`
	Seller        Seller          `gorm:"foreignKey:SellerID" json:"seller"`
	GivenQty      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"given_qty"`
	MeltedQty     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"melted_qty"`
	ReturnedQty   decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"returned_qty"`
	SoldQty       decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"sold_qty"`
	PricePerUnit  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price_per_unit"`
	CashCollected decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"cash_collected"`
	Status        string          `gorm:"size:10;not null;default:'open';index" json:"status"`
	OpenedAt      time.Time       `json:"opened_at"`
	ClosedAt      *time.Time      `json:"closed_at"`
}
