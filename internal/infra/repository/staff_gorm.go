package repository

import (
	"context"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"gorm.io/gorm"
)

type StaffGormRepository struct {
	db *gorm.DB
}

func NewStaffGormRepository(db *gorm.DB) *StaffGormRepository {
	return &StaffGormRepository{db: db}
}

func (r *StaffGormRepository) Create(ctx context.Context, staff *model.Staff) error {
	return mapError(r.db.WithContext(ctx).Create(staff).Error)
}

func (r *StaffGormRepository) FindByID(ctx context.Context, id int64) (*model.Staff, error) {
	var s model.Staff
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *StaffGormRepository) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	var s model.Staff
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&s).Error; err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *StaffGormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Staff{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ロール・有効フラグ・最終ログインの更新
func (r *StaffGormRepository) Update(ctx context.Context, staff *model.Staff) error {
	res := r.db.WithContext(ctx).Model(&model.Staff{}).Where("id = ?", staff.ID).Updates(map[string]interface{}{
		"role":          staff.Role,
		"is_active":     staff.IsActive,
		"last_login_at": staff.LastLoginAt,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
