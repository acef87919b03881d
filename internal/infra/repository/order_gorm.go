package repository

import (
	"context"
	"fmt"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"gorm.io/gorm"
)

// 顧客の紐付けがなければ "Sin cliente"
var orderViewSelect = fmt.Sprintf(`o.id, o.created_at, o.total, co.customer_id,
	COALESCE(c.first_name || ' ' || c.last_name, '%s') AS customer_name`, model.NoCustomerLabel)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return 0, mapError(err)
	}
	return order.ID, nil
}

func (r *OrderGormRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders AS o").
		Select(orderViewSelect).
		Joins("LEFT JOIN customer_orders AS co ON co.order_id = o.id").
		Joins("LEFT JOIN customers AS c ON c.id = co.customer_id")
}

func (r *OrderGormRepository) ListWithCustomer(ctx context.Context) ([]model.OrderView, error) {
	var items []model.OrderView
	err := r.views(ctx).
		Order("o.created_at DESC").
		Order("o.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderGormRepository) FindViewByID(ctx context.Context, orderID int64) (model.OrderView, error) {
	var items []model.OrderView
	if err := r.views(ctx).Where("o.id = ?", orderID).Limit(1).Scan(&items).Error; err != nil {
		return model.OrderView{}, err
	}
	if len(items) == 0 {
		return model.OrderView{}, repo.ErrNotFound
	}
	return items[0], nil
}

type CustomerOrderGormRepository struct {
	db *gorm.DB
}

func NewCustomerOrderGormRepository(db *gorm.DB) *CustomerOrderGormRepository {
	return &CustomerOrderGormRepository{db: db}
}

// order_idはUNIQUE（1注文に顧客は1人）
func (r *CustomerOrderGormRepository) Create(ctx context.Context, link model.CustomerOrder) error {
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return mapError(err)
	}
	return nil
}
