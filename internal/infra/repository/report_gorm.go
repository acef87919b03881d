package repository

import (
	"context"

	repo "tienda/internal/repository"

	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

func (r *ReportGormRepository) SalesTotals(ctx context.Context) (repo.CountAndSum, error) {
	return r.countAndSum(ctx, "sales")
}

func (r *ReportGormRepository) OrderTotals(ctx context.Context) (repo.CountAndSum, error) {
	return r.countAndSum(ctx, "orders")
}

// 行がなくてもSUMは0
func (r *ReportGormRepository) countAndSum(ctx context.Context, table string) (repo.CountAndSum, error) {
	var out repo.CountAndSum
	err := r.db.WithContext(ctx).
		Table(table).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS sum").
		Scan(&out).Error
	if err != nil {
		return repo.CountAndSum{}, err
	}
	return out, nil
}

func (r *ReportGormRepository) TopSellingProducts(ctx context.Context, limit int) ([]repo.ProductQuantity, error) {
	var out []repo.ProductQuantity
	err := r.db.WithContext(ctx).
		Table("sale_items AS si").
		Select("p.name AS name, SUM(si.quantity) AS quantity").
		Joins("JOIN products AS p ON p.id = si.product_id").
		Group("p.id, p.name").
		Order("quantity DESC").
		Order("p.name ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// 顧客なしの売上は数えない
func (r *ReportGormRepository) TopCustomersBySales(ctx context.Context, limit int) ([]repo.CustomerPurchases, error) {
	var out []repo.CustomerPurchases
	err := r.db.WithContext(ctx).
		Table("sales AS s").
		Select("c.first_name || ' ' || c.last_name AS name, COUNT(*) AS purchases").
		Joins("JOIN customers AS c ON c.id = s.customer_id").
		Group("c.id, c.first_name, c.last_name").
		Order("purchases DESC").
		Order("name ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// 在庫が少ない順
func (r *ReportGormRepository) LowStockProducts(ctx context.Context, threshold int64, limit int) ([]repo.ProductStock, error) {
	var out []repo.ProductStock
	err := r.db.WithContext(ctx).
		Table("products").
		Select("name, stock").
		Where("stock < ?", threshold).
		Order("stock ASC").
		Order("name ASC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
