package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
	auditRepo   repo.AuditLogRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

// 作成・更新の入力。Category/Brandが空なら既定値。
type ProductInput struct {
	Name     string
	Category string
	Brand    string
	Price    decimal.Decimal
	Stock    int64
}

// 注文画面の商品選択肢
type ProductOption struct {
	ID    int64           `json:"id"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
	Stock int64           `json:"stock"`
}

// "<名前> - S/.<価格> (Stock: <在庫>)"
func ProductOptionLabel(p model.Product) string {
	return fmt.Sprintf("%s - S/.%s (Stock: %d)", p.Name, p.Price.StringFixed(2), p.Stock)
}

func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) Options(ctx context.Context) ([]ProductOption, error) {
	items, err := u.productRepo.ListOrderedByName(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	out := make([]ProductOption, 0, len(items))
	for _, p := range items {
		out = append(out, ProductOption{
			ID:    p.ID,
			Label: ProductOptionLabel(p),
			Price: p.Price,
			Stock: p.Stock,
		})
	}
	return out, nil
}

func (u *ProductUsecase) Create(ctx context.Context, in ProductInput) (model.Product, error) {
	p, err := normalizeProduct(in)
	if err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 在庫が変わったときは監査ログを残す
func (u *ProductUsecase) Update(ctx context.Context, staffID int64, productID int64, in ProductInput) error {
	if staffID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	p, err := normalizeProduct(in)
	if err != nil {
		return err
	}
	p.ID = productID

	//変更前の在庫（before）
	before, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.productRepo.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if before.Stock == p.Stock {
		return nil
	}

	//「誰が」「何を」「どの対象に」「どう変えたか」を残す
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorStaffID: staffID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   fmt.Sprintf(`{"stock":%d}`, before.Stock),
		AfterJSON:    fmt.Sprintf(`{"stock":%d}`, p.Stock),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 売上明細に出てくる商品は消せない
func (u *ProductUsecase) Delete(ctx context.Context, staffID int64, productID int64) error {
	if staffID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	before, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.productRepo.Delete(ctx, productID)
	if errors.Is(err, repo.ErrHasDependents) {
		return NewHTTPError(http.StatusConflict, "product has registered sales")
	}
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorStaffID: staffID,
		Action:       model.AuditActionDeleteProduct,
		ResourceType: model.AuditResourceProduct,
		ResourceID:   productID,
		BeforeJSON:   fmt.Sprintf(`{"name":%q,"price":%q,"stock":%d}`, before.Name, before.Price.StringFixed(2), before.Stock),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func normalizeProduct(in ProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	price := in.Price.Round(2)
	if !price.IsPositive() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = model.DefaultProductCategory
	}
	brand := strings.TrimSpace(in.Brand)
	if brand == "" {
		brand = model.DefaultProductBrand
	}

	return model.Product{
		Name:     name,
		Category: category,
		Brand:    brand,
		Price:    price,
		Stock:    in.Stock,
	}, nil
}
