package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 売上（店頭での販売記録）
// 顧客がある売上は顧客を消せない（RESTRICT）
type Sale struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID *int64          `gorm:"index" json:"customer_id"`
	Customer   *Customer       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	Items      []SaleItem      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items,omitempty"`
}
