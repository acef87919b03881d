package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

type CountAndSum struct {
	Count int64           `json:"count"`
	Sum   decimal.Decimal `json:"sum"`
}

type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type CustomerPurchases struct {
	Name      string `json:"name"`
	Purchases int64  `json:"purchases"`
}

type ProductStock struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

// 集計用の読み取り専用クエリ
type ReportRepository interface {
	SalesTotals(ctx context.Context) (CountAndSum, error)
	OrderTotals(ctx context.Context) (CountAndSum, error)
	TopSellingProducts(ctx context.Context, limit int) ([]ProductQuantity, error)
	TopCustomersBySales(ctx context.Context, limit int) ([]CustomerPurchases, error)
	LowStockProducts(ctx context.Context, threshold int64, limit int) ([]ProductStock, error)
}
