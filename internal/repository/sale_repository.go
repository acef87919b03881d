package repository

import (
	"context"
	"time"

	"tienda/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 売上一覧の1行（顧客名付き）
type SaleRow struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Date         time.Time       `json:"date"`
	Total        decimal.Decimal `json:"total"`
}

type SaleRepository interface {
	//新しい順
	ListWithCustomer(ctx context.Context) ([]SaleRow, error)

	//明細があれば同じトランザクションで保存する
	Create(ctx context.Context, s model.Sale) (model.Sale, error)
}
