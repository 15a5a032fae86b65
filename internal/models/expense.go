package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ExpenseIngredient  = "ingredient"
	ExpenseFuel        = "fuel"
	ExpenseMaintenance = "maintenance"
	ExpenseOther       = "other"
)

type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Category    string          `gorm:"size:20;not null;default:'other'" json:"category"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	ProductID   *uint           `gorm:"index" json:"product_id"`
	DispatchID  *uint           `gorm:"index" json:"dispatch_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
