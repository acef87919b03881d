package repository

import (
	"context"

	"tienda/internal/domain/model"
)

// スタッフの保存・取得を約束
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	FindByID(ctx context.Context, id int64) (*model.Staff, error)
	//見つからなければErrNotFound
	FindByEmail(ctx context.Context, email string) (*model.Staff, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, staff *model.Staff) error
}
