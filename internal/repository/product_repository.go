package repository

import (
	"context"

	"tienda/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)

	//選択肢用（名前順）
	ListOrderedByName(ctx context.Context) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error

	//売上明細がある商品はErrHasDependents
	Delete(ctx context.Context, id int64) error
}
