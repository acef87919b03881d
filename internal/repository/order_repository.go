package repository

import (
	"context"

	"tienda/internal/domain/model"
)

type OrderRepository interface {
	//ヘッダを保存して採番されたIDを返す
	Create(ctx context.Context, order model.Order) (int64, error)

	//新しい順、顧客名付き
	ListWithCustomer(ctx context.Context) ([]model.OrderView, error)
	FindViewByID(ctx context.Context, orderID int64) (model.OrderView, error)
}

// 顧客と注文の関連
type CustomerOrderRepository interface {
	Create(ctx context.Context, link model.CustomerOrder) error
}
