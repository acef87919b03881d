package handler_test

import (
	"net/http"
	"testing"
	"time"

	"tienda/internal/domain/model"
	"tienda/internal/handler"
	"tienda/internal/mocks"
	"tienda/internal/repository"
	"tienda/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type orderEnv struct {
	e     *echo.Echo
	store *mocks.MemoryTx
	token string
}

// 商品A(10.00, 在庫5) B(5.50, 在庫100) C(2.25, 在庫3)、顧客7
func newOrderEnv(t *testing.T) orderEnv {
	t.Helper()

	products := new(mocks.ProductRepoMock)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Name: "A", Price: decimal.RequireFromString("10.00"), Stock: 5}, nil).Maybe()
	products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, Name: "B", Price: decimal.RequireFromString("5.50"), Stock: 100}, nil).Maybe()
	products.On("FindByID", mock.Anything, int64(3)).Return(model.Product{ID: 3, Name: "C", Price: decimal.RequireFromString("2.25"), Stock: 3}, nil).Maybe()
	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repository.ErrNotFound).Maybe()
	customers := new(mocks.CustomerRepoMock)
	customers.On("FindByID", mock.Anything, int64(7)).Return(model.Customer{ID: 7, FirstName: "Carla", LastName: "Rojas"}, nil).Maybe()

	store := mocks.NewMemoryTx()
	uc := usecase.NewOrderUsecase(store, products, customers, fixedClock{time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)})

	e := echo.New()
	handler.NewOrderHandler(uc).RegisterRoutes(e, testCfg, activeStaff(4, model.RoleStaff))
	return orderEnv{e: e, store: store, token: bearer(t, 4, model.RoleStaff)}
}

func (env orderEnv) do(t *testing.T, method, path, body string) (int, usecase.DraftOutput) {
	t.Helper()
	rec := doJSON(t, env.e, method, path, env.token, body)
	if rec.Code != http.StatusOK {
		return rec.Code, usecase.DraftOutput{}
	}
	return rec.Code, decodeJSON[usecase.DraftOutput](t, rec)
}

func TestOrderHandler_DraftFlow(t *testing.T) {
	env := newOrderEnv(t)

	code, d := env.do(t, http.MethodGet, "/orders/draft", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "EMPTY", d.State)
	assert.Empty(t, d.Lines)

	//数量は数値でも文字列でもよい
	code, d = env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "20.00", d.Total.StringFixed(2))

	code, d = env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":2,"quantity":"3"}`)
	require.Equal(t, http.StatusOK, code)
	code, d = env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":3,"quantity":"1"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "38.75", d.Total.StringFixed(2))
	require.Len(t, d.Lines, 3)

	//Bを消す
	code, d = env.do(t, http.MethodDelete, "/orders/draft/items", `{"line_ids":[2]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "22.25", d.Total.StringFixed(2))
	assert.Equal(t, []int{1, 3}, []int{d.Lines[0].LineID, d.Lines[1].LineID})

	code, d = env.do(t, http.MethodPut, "/orders/draft/customer", `{"customer_id":7}`)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, d.Customer)
	assert.Equal(t, "Carla Rojas", d.Customer.Name)

	rec := doJSON(t, env.e, http.MethodPost, "/orders/draft/confirm", env.token, `{"total":"22.25"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decodeJSON[usecase.ConfirmDraftOutput](t, rec)
	assert.Equal(t, int64(1), res.OrderID)
	assert.True(t, res.StockCheckedAtAddOnly)

	require.Len(t, env.store.Orders, 1)
	assert.Equal(t, "22.25", env.store.Orders[0].Total.StringFixed(2))
	require.Len(t, env.store.Links, 1)
	assert.Equal(t, int64(7), env.store.Links[0].CustomerID)
	require.Len(t, env.store.AuditLogs, 1)
	assert.Equal(t, model.AuditActionCreateOrder, env.store.AuditLogs[0].Action)

	//確定後は空に戻る
	code, d = env.do(t, http.MethodGet, "/orders/draft", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "EMPTY", d.State)
	assert.Nil(t, d.Customer)

	//一覧・詳細
	rec = doJSON(t, env.e, http.MethodGet, "/orders", env.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	views := decodeJSON[[]model.OrderView](t, rec)
	require.Len(t, views, 1)

	rec = doJSON(t, env.e, http.MethodGet, "/orders/1", env.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeJSON[model.OrderView](t, rec)
	require.NotNil(t, view.CustomerID)
	assert.Equal(t, int64(7), *view.CustomerID)
}

func TestOrderHandler_AddItem_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
		msg  string
	}{
		{name: "decimal quantity", body: `{"product_id":1,"quantity":1.5}`, want: http.StatusBadRequest, msg: "quantity must be a positive integer"},
		{name: "text quantity", body: `{"product_id":1,"quantity":"dos"}`, want: http.StatusBadRequest, msg: "quantity must be a positive integer"},
		{name: "zero", body: `{"product_id":1,"quantity":0}`, want: http.StatusBadRequest, msg: "quantity must be a positive integer"},
		{name: "missing quantity", body: `{"product_id":1}`, want: http.StatusBadRequest, msg: "quantity must be a positive integer"},
		{name: "over stock", body: `{"product_id":3,"quantity":5}`, want: http.StatusBadRequest, msg: "insufficient stock: only 3 available"},
		{name: "unknown product", body: `{"product_id":99,"quantity":1}`, want: http.StatusNotFound, msg: "product not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newOrderEnv(t)

			rec := doJSON(t, env.e, http.MethodPost, "/orders/draft/items", env.token, tt.body)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.msg, decodeError(t, rec).Error)
		})
	}
}

func TestOrderHandler_RemoveItems_Errors(t *testing.T) {
	env := newOrderEnv(t)
	code, _ := env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":1,"quantity":1}`)
	require.Equal(t, http.StatusOK, code)

	rec := doJSON(t, env.e, http.MethodDelete, "/orders/draft/items", env.token, `{"line_ids":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, env.e, http.MethodDelete, "/orders/draft/items", env.token, `{"line_ids":[1,42]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	//何も消えていない
	_, d := env.do(t, http.MethodGet, "/orders/draft", "")
	assert.Len(t, d.Lines, 1)
}

func TestOrderHandler_Confirm_Errors(t *testing.T) {
	env := newOrderEnv(t)

	rec := doJSON(t, env.e, http.MethodPost, "/orders/draft/confirm", env.token, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "order has no lines", decodeError(t, rec).Error)
	assert.Equal(t, 0, env.store.Calls)

	code, _ := env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":2,"quantity":2}`)
	require.Equal(t, http.StatusOK, code)

	//画面の合計が古い
	rec = doJSON(t, env.e, http.MethodPost, "/orders/draft/confirm", env.token, `{"total":10}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, env.store.Orders)

	//下書きは残っている
	_, d := env.do(t, http.MethodGet, "/orders/draft", "")
	assert.Equal(t, "ACCUMULATING", d.State)
}

// 確定前に選択解除すれば関連は作られない
func TestOrderHandler_Confirm_WithoutCustomer(t *testing.T) {
	env := newOrderEnv(t)
	env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":2,"quantity":1}`)
	env.do(t, http.MethodPut, "/orders/draft/customer", `{"customer_id":7}`)

	code, d := env.do(t, http.MethodPut, "/orders/draft/customer", `{"customer_id":null}`)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, d.Customer)

	rec := doJSON(t, env.e, http.MethodPost, "/orders/draft/confirm", env.token, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, env.store.Orders, 1)
	assert.Empty(t, env.store.Links)

	rec = doJSON(t, env.e, http.MethodGet, "/orders/1", env.token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.NoCustomerLabel, decodeJSON[model.OrderView](t, rec).CustomerName)
}

func TestOrderHandler_Reset(t *testing.T) {
	env := newOrderEnv(t)
	env.do(t, http.MethodPost, "/orders/draft/items", `{"product_id":2,"quantity":1}`)

	code, d := env.do(t, http.MethodDelete, "/orders/draft", "")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "EMPTY", d.State)
	assert.True(t, d.Total.IsZero())
}

func TestOrderHandler_Detail_NotFound(t *testing.T) {
	env := newOrderEnv(t)

	rec := doJSON(t, env.e, http.MethodGet, "/orders/123", env.token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, env.e, http.MethodGet, "/orders/x", env.token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
