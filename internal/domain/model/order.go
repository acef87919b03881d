package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文ヘッダ
// 顧客との紐付けはCustomerOrderで別に持つ
type Order struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time       `gorm:"not null;index" json:"created_at"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
}

// 一覧・詳細で返す形（顧客名はJOINで取る）
type OrderView struct {
	ID           int64           `json:"id"`
	CreatedAt    time.Time       `json:"created_at"`
	Total        decimal.Decimal `json:"total"`
	CustomerID   *int64          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
}
