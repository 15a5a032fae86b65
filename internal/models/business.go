package models

import "time"

type Business struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Type      string    `gorm:"size:50" json:"type"` // e.g. "ice_cream", "bakery"
	OwnerID   uint      `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusinessProfile is the public-facing profile served without auth,
// loaded from config/business.toml.
type BusinessProfile struct {
	Name         string   `json:"name"`
	Tagline      string   `json:"tagline"`
	Type         string   `json:"type"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Email        string   `json:"email"`
	Whatsapp     string   `json:"whatsapp"`
	OpeningHours string   `json:"opening_hours"`
	WorkingDays  []string `json:"working_days"`
}
