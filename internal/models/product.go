package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Name              string          `gorm:"size:150;not null" json:"name"`
	Sku               string          `gorm:"size:50;index" json:"sku"`
	Unit              string          `gorm:"size:20;not null" json:"unit"` // pcs, box, litre, ...
	Price             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Cost              decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"cost"`
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(20,4);default:10" json:"low_stock_threshold"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}
