// Package builder は注文の作成途中の状態（明細・顧客・合計）をメモリ上で持ち、
// 確定時にヘッダと顧客の関連を1トランザクションで保存する。
package builder

import (
	"context"
	"strconv"
	"strings"
	"time"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"

	"github.com/shopspring/decimal"
)

// 商品選択時点のスナップショット
type ProductRef struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal
	Stock     int64
}

type CustomerRef struct {
	ID   int64
	Name string
}

// 注文明細。小計は常に単価×数量から出す。
type LineItem struct {
	LineID   int
	Product  ProductRef
	Quantity int64
}

func (l LineItem) Subtotal() decimal.Decimal {
	return l.Product.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

type State string

const (
	StateEmpty        State = "EMPTY"
	StateAccumulating State = "ACCUMULATING"
)

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 確定時の入力
type CommitInput struct {
	// nilなら事前に選択した顧客を使う
	Customer *CustomerRef

	// 画面に出ていた合計。nilなら照合しない
	DisplayedTotal *decimal.Decimal

	// ヘッダ・関連と同じトランザクションで追加の書き込みをする（監査ログなど）
	InTx func(ctx context.Context, r repo.TxRepos, orderID int64) error
}

// Builder は1件の作成中注文を持つ。並行に触らないこと（呼び出し側で直列化する）。
type Builder struct {
	tx    repo.TransactionManager
	clock Clock

	lines    []LineItem
	customer *CustomerRef
	total    decimal.Decimal
	nextLine int
}

func New(tx repo.TransactionManager, clock Clock) *Builder {
	return &Builder{
		tx:       tx,
		clock:    clock,
		total:    decimal.Zero,
		nextLine: 1,
	}
}

// 明細を追加する。数量は画面の入力値そのまま。
func (b *Builder) AddLineItem(product ProductRef, quantityInput string) (LineItem, error) {
	qty, err := strconv.ParseInt(strings.TrimSpace(quantityInput), 10, 64)
	if err != nil || qty <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}

	//在庫チェック（減算はしない）
	if qty > product.Stock {
		return LineItem{}, &InsufficientStockError{Available: product.Stock}
	}

	line := LineItem{
		LineID:   b.nextLine,
		Product:  product,
		Quantity: qty,
	}
	b.nextLine++
	b.lines = append(b.lines, line)
	b.total = b.RecomputeTotal()

	return line, nil
}

// 指定した明細だけを削除する。1つでも存在しないIDがあれば何も消さない。
func (b *Builder) RemoveLineItems(lineIDs ...int) error {
	if len(lineIDs) == 0 {
		return ErrNoSelection
	}

	selected := make(map[int]struct{}, len(lineIDs))
	for _, id := range lineIDs {
		selected[id] = struct{}{}
	}

	found := 0
	for _, l := range b.lines {
		if _, ok := selected[l.LineID]; ok {
			found++
		}
	}
	if found != len(selected) {
		return ErrUnknownLine
	}

	kept := make([]LineItem, 0, len(b.lines)-found)
	for _, l := range b.lines {
		if _, ok := selected[l.LineID]; !ok {
			kept = append(kept, l)
		}
	}
	b.lines = kept
	b.total = b.RecomputeTotal()

	return nil
}

// 明細の小計の合計
func (b *Builder) RecomputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// nilで選択解除
func (b *Builder) SelectCustomer(c *CustomerRef) {
	b.customer = c
}

func (b *Builder) Reset() {
	b.lines = nil
	b.customer = nil
	b.total = decimal.Zero
	b.nextLine = 1
}

func (b *Builder) State() State {
	if len(b.lines) == 0 {
		return StateEmpty
	}
	return StateAccumulating
}

func (b *Builder) Total() decimal.Decimal {
	return b.total
}

func (b *Builder) Customer() *CustomerRef {
	if b.customer == nil {
		return nil
	}
	c := *b.customer
	return &c
}

// 表示用のコピー
func (b *Builder) Lines() []LineItem {
	out := make([]LineItem, len(b.lines))
	copy(out, b.lines)
	return out
}

// 注文を確定する。成功したら新しい注文IDを返して空に戻る。
// 失敗したときは明細・顧客をそのまま残す（再実行できるように）。
func (b *Builder) Commit(ctx context.Context, in CommitInput) (int64, error) {
	if len(b.lines) == 0 {
		return 0, ErrEmptyOrder
	}

	recomputed := b.RecomputeTotal()
	if !b.total.Equal(recomputed) {
		return 0, ErrTotalMismatch
	}
	if in.DisplayedTotal != nil && !in.DisplayedTotal.Equal(recomputed) {
		return 0, ErrTotalMismatch
	}

	customer := b.customer
	if in.Customer != nil {
		customer = in.Customer
	}

	var orderID int64
	err := b.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, model.Order{
			CreatedAt: b.clock.Now(),
			Total:     recomputed,
		})
		if err != nil {
			return err
		}

		//顧客が選ばれていれば関連を作る
		if customer != nil {
			if err := r.CustomerOrders().Create(ctx, model.CustomerOrder{
				CustomerID: customer.ID,
				OrderID:    id,
			}); err != nil {
				return err
			}
		}

		if in.InTx != nil {
			if err := in.InTx(ctx, r, id); err != nil {
				return err
			}
		}

		orderID = id
		return nil
	})
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}

	b.Reset()
	return orderID, nil
}
