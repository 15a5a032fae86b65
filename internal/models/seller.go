package models

import (
	"time"

	"gorm.io/gorm"
)

// Seller is the person a dispatch is issued to, not a login account.
type Seller struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Phone     string         `gorm:"size:15" json:"phone"`
	Route     string         `gorm:"size:100" json:"route"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
