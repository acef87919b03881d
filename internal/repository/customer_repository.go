package repository

import (
	"context"

	"tienda/internal/domain/model"
)

// 顧客の保存・取得の約束
type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)

	//選択肢用（名前順）
	ListOrderedByName(ctx context.Context) ([]model.Customer, error)

	FindByID(ctx context.Context, id int64) (model.Customer, error)

	//DNIで検索。excludeIDが0より大きければその顧客は除く
	ExistsByDNI(ctx context.Context, dni string, excludeID int64) (bool, error)

	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	Update(ctx context.Context, c model.Customer) error

	//売上がある顧客はErrHasDependents
	Delete(ctx context.Context, id int64) error
}
