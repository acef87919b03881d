package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultProductCategory = "General"
	DefaultProductBrand    = "Sin marca"
)

type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Category  string          `gorm:"type:varchar(100);not null;default:'General'" json:"category"`
	Brand     string          `gorm:"type:varchar(100);not null;default:'Sin marca'" json:"brand"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Stock     int64           `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
