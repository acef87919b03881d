package repository

import (
	"context"
	"fmt"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"gorm.io/gorm"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

// 新しい順
func (r *SaleGormRepository) ListWithCustomer(ctx context.Context) ([]repo.SaleRow, error) {
	var rows []repo.SaleRow
	err := r.db.WithContext(ctx).
		Table("sales AS s").
		Select(fmt.Sprintf(`s.id, s.date, s.total,
			COALESCE(c.first_name || ' ' || c.last_name, '%s') AS customer_name`, model.NoCustomerLabel)).
		Joins("LEFT JOIN customers AS c ON c.id = s.customer_id").
		Order("s.date DESC").
		Order("s.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// 明細(Items)はgormが同じトランザクションで一緒に保存する
func (r *SaleGormRepository) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Customer").Create(&s).Error
	})
	if err != nil {
		return model.Sale{}, mapError(err)
	}
	return s, nil
}
