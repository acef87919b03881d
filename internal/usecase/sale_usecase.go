package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"github.com/shopspring/decimal"
)

type SaleUsecase struct {
	sales     repo.SaleRepository
	customers repo.CustomerRepository
	products  repo.ProductRepository
}

func NewSaleUsecase(sales repo.SaleRepository, customers repo.CustomerRepository, products repo.ProductRepository) *SaleUsecase {
	return &SaleUsecase{sales: sales, customers: customers, products: products}
}

type SaleItemInput struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
}

// CustomerIDがnilなら「Sin cliente」
type CreateSaleInput struct {
	CustomerID *int64
	Total      decimal.Decimal
	Items      []SaleItemInput
}

func (u *SaleUsecase) List(ctx context.Context) ([]repo.SaleRow, error) {
	rows, err := u.sales.ListWithCustomer(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

// 明細があれば合計と一致していること
func (u *SaleUsecase) Create(ctx context.Context, in CreateSaleInput) (model.Sale, error) {
	total := in.Total.Round(2)
	if !total.IsPositive() {
		return model.Sale{}, NewHTTPError(http.StatusBadRequest, "total must be > 0")
	}

	if in.CustomerID != nil {
		if *in.CustomerID <= 0 {
			return model.Sale{}, NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		_, err := u.customers.FindByID(ctx, *in.CustomerID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Sale{}, NewHTTPError(http.StatusNotFound, "customer not found")
		}
		if err != nil {
			return model.Sale{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	items := make([]model.SaleItem, 0, len(in.Items))
	sum := decimal.Zero
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return model.Sale{}, NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
		}
		if !it.UnitPrice.IsPositive() {
			return model.Sale{}, NewHTTPError(http.StatusBadRequest, "unit_price must be > 0")
		}
		_, err := u.products.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Sale{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return model.Sale{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items = append(items, model.SaleItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.Round(2),
		})
		sum = sum.Add(it.UnitPrice.Round(2).Mul(decimal.NewFromInt(it.Quantity)))
	}
	if len(items) > 0 && !sum.Equal(total) {
		return model.Sale{}, NewHTTPError(http.StatusConflict, "total does not match items")
	}

	created, err := u.sales.Create(ctx, model.Sale{
		CustomerID: in.CustomerID,
		Date:       time.Now(),
		Total:      total,
		Items:      items,
	})
	if err != nil {
		return model.Sale{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}
