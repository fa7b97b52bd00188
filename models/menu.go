package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DefaultPreparationTime is used when a menu item is created without one (minutes).
const DefaultPreparationTime = 15

type MenuItem struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	Name            string          `json:"name" gorm:"not null"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category        string          `json:"category" gorm:"not null;index"`
	ImageURL        string          `json:"image_url"`
	Available       bool            `json:"available" gorm:"not null"`
	PreparationTime int             `json:"preparation_time" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
