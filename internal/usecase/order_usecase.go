package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
	builder "tienda/internal/usecase/order_builder"

	"github.com/shopspring/decimal"
)

// 作成中の注文（スタッフごとに1件）
type draft struct {
	mu sync.Mutex
	b  *builder.Builder
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	products  repo.ProductRepository
	customers repo.CustomerRepository
	clock     builder.Clock

	mu     sync.Mutex
	drafts map[int64]*draft
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	products repo.ProductRepository,
	customers repo.CustomerRepository,
	clock builder.Clock,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		products:  products,
		customers: customers,
		clock:     clock,
		drafts:    make(map[int64]*draft),
	}
}

type DraftLineOutput struct {
	LineID    int             `json:"line_id"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type DraftCustomerOutput struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DraftOutput struct {
	State    string               `json:"state"`
	Lines    []DraftLineOutput    `json:"lines"`
	Customer *DraftCustomerOutput `json:"customer"`
	Total    decimal.Decimal      `json:"total"`
}

// Quantityは入力値そのまま（数値チェックはBuilderでする）
type AddDraftItemInput struct {
	ProductID int64
	Quantity  string
}

// Totalは画面に表示していた合計。nilなら照合しない
type ConfirmDraftInput struct {
	Total *decimal.Decimal
}

type ConfirmDraftOutput struct {
	OrderID int64           `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
	// 在庫は明細追加時にしか見ていない（確定時に再チェックも減算もしない）
	StockCheckedAtAddOnly bool `json:"stock_checked_at_add_only"`
}

func (u *OrderUsecase) draftFor(staffID int64) *draft {
	u.mu.Lock()
	defer u.mu.Unlock()

	d, ok := u.drafts[staffID]
	if !ok {
		d = &draft{b: builder.New(u.tx, u.clock)}
		u.drafts[staffID] = d
	}
	return d
}

func (u *OrderUsecase) GetDraft(ctx context.Context, staffID int64) (DraftOutput, error) {
	if staffID <= 0 {
		return DraftOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	d := u.draftFor(staffID)
	d.mu.Lock()
	defer d.mu.Unlock()

	return toDraftOutput(d.b), nil
}

func (u *OrderUsecase) AddItem(ctx context.Context, staffID int64, in AddDraftItemInput) (DraftOutput, error) {
	if staffID <= 0 {
		return DraftOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return DraftOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//選択時点の商品をスナップショット
	p, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return DraftOutput{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return DraftOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	d := u.draftFor(staffID)
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.b.AddLineItem(builder.ProductRef{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Stock:     p.Stock,
	}, in.Quantity); err != nil {
		return DraftOutput{}, mapBuilderError(err)
	}
	return toDraftOutput(d.b), nil
}

func (u *OrderUsecase) RemoveItems(ctx context.Context, staffID int64, lineIDs []int) (DraftOutput, error) {
	if staffID <= 0 {
		return DraftOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	d := u.draftFor(staffID)
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.b.RemoveLineItems(lineIDs...); err != nil {
		return DraftOutput{}, mapBuilderError(err)
	}
	return toDraftOutput(d.b), nil
}

// customerIDがnilなら選択解除
func (u *OrderUsecase) SelectCustomer(ctx context.Context, staffID int64, customerID *int64) (DraftOutput, error) {
	if staffID <= 0 {
		return DraftOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var ref *builder.CustomerRef
	if customerID != nil {
		if *customerID <= 0 {
			return DraftOutput{}, NewHTTPError(http.StatusBadRequest, "invalid customer_id")
		}
		c, err := u.customers.FindByID(ctx, *customerID)
		if errors.Is(err, repo.ErrNotFound) {
			return DraftOutput{}, NewHTTPError(http.StatusNotFound, "customer not found")
		}
		if err != nil {
			return DraftOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		ref = &builder.CustomerRef{ID: c.ID, Name: c.DisplayName()}
	}

	d := u.draftFor(staffID)
	d.mu.Lock()
	defer d.mu.Unlock()

	d.b.SelectCustomer(ref)
	return toDraftOutput(d.b), nil
}

func (u *OrderUsecase) ResetDraft(ctx context.Context, staffID int64) (DraftOutput, error) {
	if staffID <= 0 {
		return DraftOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	d := u.draftFor(staffID)
	d.mu.Lock()
	defer d.mu.Unlock()

	d.b.Reset()
	return toDraftOutput(d.b), nil
}

// 注文を確定する。ヘッダ・顧客の関連・監査ログは1トランザクション。
func (u *OrderUsecase) ConfirmDraft(ctx context.Context, staffID int64, in ConfirmDraftInput) (ConfirmDraftOutput, error) {
	if staffID <= 0 {
		return ConfirmDraftOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	d := u.draftFor(staffID)
	d.mu.Lock()
	defer d.mu.Unlock()

	total := d.b.Total()
	customer := d.b.Customer()
	lines := len(d.b.Lines())

	orderID, err := d.b.Commit(ctx, builder.CommitInput{
		DisplayedTotal: in.Total,
		InTx: func(ctx context.Context, r repo.TxRepos, orderID int64) error {
			after := fmt.Sprintf(`{"total":%q,"lines":%d,"customer_id":null}`, total.StringFixed(2), lines)
			if customer != nil {
				after = fmt.Sprintf(`{"total":%q,"lines":%d,"customer_id":%d}`, total.StringFixed(2), lines, customer.ID)
			}
			return r.AuditLogs().Create(ctx, model.AuditLog{
				ActorStaffID: staffID,
				Action:       model.AuditActionCreateOrder,
				ResourceType: model.AuditResourceOrder,
				ResourceID:   orderID,
				AfterJSON:    after,
				CreatedAt:    time.Now(),
			})
		},
	})
	if err != nil {
		return ConfirmDraftOutput{}, mapBuilderError(err)
	}

	return ConfirmDraftOutput{
		OrderID:               orderID,
		Total:                 total,
		StockCheckedAtAddOnly: true,
	}, nil
}

// 新しい順
func (u *OrderUsecase) List(ctx context.Context) ([]model.OrderView, error) {
	var out []model.OrderView
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		views, err := r.Orders().ListWithCustomer(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = views
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.OrderView{}
	}
	return out, nil
}

func (u *OrderUsecase) Detail(ctx context.Context, orderID int64) (model.OrderView, error) {
	if orderID <= 0 {
		return model.OrderView{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.OrderView
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		v, err := r.Orders().FindViewByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = v
		return nil
	})
	if err != nil {
		return model.OrderView{}, err
	}
	return out, nil
}

func toDraftOutput(b *builder.Builder) DraftOutput {
	lines := b.Lines()
	out := DraftOutput{
		State: string(b.State()),
		Lines: make([]DraftLineOutput, 0, len(lines)),
		Total: b.Total(),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, DraftLineOutput{
			LineID:    l.LineID,
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			UnitPrice: l.Product.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	if c := b.Customer(); c != nil {
		out.Customer = &DraftCustomerOutput{ID: c.ID, Name: c.Name}
	}
	return out
}

// Builderのエラーをステータスに変換
func mapBuilderError(err error) error {
	var stockErr *builder.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return NewHTTPError(http.StatusBadRequest, stockErr.Error())
	case errors.Is(err, builder.ErrInvalidQuantity):
		return NewHTTPError(http.StatusBadRequest, "quantity must be a positive integer")
	case errors.Is(err, builder.ErrNoSelection):
		return NewHTTPError(http.StatusBadRequest, "no line selected")
	case errors.Is(err, builder.ErrUnknownLine):
		return NewHTTPError(http.StatusNotFound, "unknown line")
	case errors.Is(err, builder.ErrEmptyOrder):
		return NewHTTPError(http.StatusBadRequest, "order has no lines")
	case errors.Is(err, builder.ErrTotalMismatch):
		return NewHTTPError(http.StatusConflict, "total does not match lines")
	case errors.Is(err, builder.ErrPersistence):
		return NewHTTPError(http.StatusInternalServerError, "could not save order")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
