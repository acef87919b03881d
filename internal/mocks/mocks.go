// Package mocks はusecase・handlerのテストで使うリポジトリのモック。
package mocks

import (
	"context"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Customer
// =====================

type CustomerRepoMock struct{ mock.Mock }

func (m *CustomerRepoMock) List(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Customer)
	return items, args.Error(1)
}

func (m *CustomerRepoMock) ListOrderedByName(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Customer)
	return items, args.Error(1)
}

func (m *CustomerRepoMock) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Customer)
	return c, args.Error(1)
}

func (m *CustomerRepoMock) ExistsByDNI(ctx context.Context, dni string, excludeID int64) (bool, error) {
	args := m.Called(ctx, dni, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *CustomerRepoMock) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Customer)
	return created, args.Error(1)
}

func (m *CustomerRepoMock) Update(ctx context.Context, c model.Customer) error {
	return m.Called(ctx, c).Error(0)
}

func (m *CustomerRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// =====================
// Product
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ListOrderedByName(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// =====================
// Sale
// =====================

type SaleRepoMock struct{ mock.Mock }

func (m *SaleRepoMock) ListWithCustomer(ctx context.Context) ([]repo.SaleRow, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repo.SaleRow)
	return rows, args.Error(1)
}

func (m *SaleRepoMock) Create(ctx context.Context, s model.Sale) (model.Sale, error) {
	args := m.Called(ctx, s)
	created, _ := args.Get(0).(model.Sale)
	return created, args.Error(1)
}

// =====================
// Staff
// =====================

type StaffRepoMock struct{ mock.Mock }

func (m *StaffRepoMock) Create(ctx context.Context, staff *model.Staff) error {
	return m.Called(ctx, staff).Error(0)
}

func (m *StaffRepoMock) FindByID(ctx context.Context, id int64) (*model.Staff, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Staff)
	return s, args.Error(1)
}

func (m *StaffRepoMock) FindByEmail(ctx context.Context, email string) (*model.Staff, error) {
	args := m.Called(ctx, email)
	s, _ := args.Get(0).(*model.Staff)
	return s, args.Error(1)
}

func (m *StaffRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StaffRepoMock) Update(ctx context.Context, staff *model.Staff) error {
	return m.Called(ctx, staff).Error(0)
}

// =====================
// Report
// =====================

type ReportRepoMock struct{ mock.Mock }

func (m *ReportRepoMock) SalesTotals(ctx context.Context) (repo.CountAndSum, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(repo.CountAndSum)
	return v, args.Error(1)
}

func (m *ReportRepoMock) OrderTotals(ctx context.Context) (repo.CountAndSum, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(repo.CountAndSum)
	return v, args.Error(1)
}

func (m *ReportRepoMock) TopSellingProducts(ctx context.Context, limit int) ([]repo.ProductQuantity, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]repo.ProductQuantity)
	return v, args.Error(1)
}

func (m *ReportRepoMock) TopCustomersBySales(ctx context.Context, limit int) ([]repo.CustomerPurchases, error) {
	args := m.Called(ctx, limit)
	v, _ := args.Get(0).([]repo.CustomerPurchases)
	return v, args.Error(1)
}

func (m *ReportRepoMock) LowStockProducts(ctx context.Context, threshold int64, limit int) ([]repo.ProductStock, error) {
	args := m.Called(ctx, threshold, limit)
	v, _ := args.Get(0).([]repo.ProductStock)
	return v, args.Error(1)
}

// =====================
// AuditLog
// =====================

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}
