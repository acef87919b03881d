package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"tienda/internal/domain/model"
	"tienda/internal/mocks"
	repo "tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSaleUsecase_Create_WithoutCustomer(t *testing.T) {
	sales := new(mocks.SaleRepoMock)
	sales.On("Create", mock.Anything, mock.MatchedBy(func(s model.Sale) bool {
		return s.CustomerID == nil && s.Total.Equal(decimal.RequireFromString("25.90")) && len(s.Items) == 0
	})).Return(model.Sale{ID: 1}, nil)

	uc := usecase.NewSaleUsecase(sales, new(mocks.CustomerRepoMock), new(mocks.ProductRepoMock))

	s, err := uc.Create(context.Background(), usecase.CreateSaleInput{Total: decimal.RequireFromString("25.9")})

	require.NoError(t, err)
	assert.Equal(t, int64(1), s.ID)
	sales.AssertExpectations(t)
}

func TestSaleUsecase_Create_TotalMustBePositive(t *testing.T) {
	uc := usecase.NewSaleUsecase(new(mocks.SaleRepoMock), new(mocks.CustomerRepoMock), new(mocks.ProductRepoMock))

	_, err := uc.Create(context.Background(), usecase.CreateSaleInput{Total: decimal.Zero})

	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestSaleUsecase_Create_UnknownCustomer(t *testing.T) {
	customers := new(mocks.CustomerRepoMock)
	customers.On("FindByID", mock.Anything, int64(5)).Return(model.Customer{}, repo.ErrNotFound)

	uc := usecase.NewSaleUsecase(new(mocks.SaleRepoMock), customers, new(mocks.ProductRepoMock))

	cid := int64(5)
	_, err := uc.Create(context.Background(), usecase.CreateSaleInput{CustomerID: &cid, Total: decimal.NewFromInt(3)})

	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestSaleUsecase_Create_ItemsMustMatchTotal(t *testing.T) {
	products := new(mocks.ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)

	uc := usecase.NewSaleUsecase(new(mocks.SaleRepoMock), new(mocks.CustomerRepoMock), products)

	_, err := uc.Create(context.Background(), usecase.CreateSaleInput{
		Total: decimal.NewFromInt(30),
		Items: []usecase.SaleItemInput{{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
	})

	assertHTTPStatus(t, err, http.StatusConflict)
}

func TestSaleUsecase_Create_WithItems(t *testing.T) {
	products := new(mocks.ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1}, nil)
	customers := new(mocks.CustomerRepoMock)
	customers.On("FindByID", mock.Anything, int64(7)).Return(model.Customer{ID: 7}, nil)
	sales := new(mocks.SaleRepoMock)
	sales.On("Create", mock.Anything, mock.MatchedBy(func(s model.Sale) bool {
		return *s.CustomerID == 7 && len(s.Items) == 1 && s.Items[0].Quantity == 2
	})).Return(model.Sale{ID: 2}, nil)

	uc := usecase.NewSaleUsecase(sales, customers, products)

	cid := int64(7)
	_, err := uc.Create(context.Background(), usecase.CreateSaleInput{
		CustomerID: &cid,
		Total:      decimal.NewFromInt(20),
		Items:      []usecase.SaleItemInput{{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
	})

	assert.NoError(t, err)
	sales.AssertExpectations(t)
}
