package mocks

import (
	"context"
	"sort"
	"sync"

	"tienda/internal/domain/model"
	repo "tienda/internal/repository"
)

// MemoryTx はTransactionManagerのメモリ実装。
// WithinTxの中の書き込みはステージして、fnがnilを返したときだけ反映する。
type MemoryTx struct {
	mu sync.Mutex

	Orders    []model.Order
	Links     []model.CustomerOrder
	AuditLogs []model.AuditLog

	// テストで失敗させたい操作
	FailOrderCreate error
	FailLinkCreate  error
	FailAuditCreate error

	// WithinTxが呼ばれた回数
	Calls int

	nextOrderID int64
}

func NewMemoryTx() *MemoryTx {
	return &MemoryTx{nextOrderID: 1}
}

func (m *MemoryTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls++
	st := &memoryStage{parent: m, nextOrderID: m.nextOrderID}
	if err := fn(st); err != nil {
		//rollback: ステージを捨てる
		return err
	}

	m.Orders = append(m.Orders, st.orders...)
	m.Links = append(m.Links, st.links...)
	m.AuditLogs = append(m.AuditLogs, st.audits...)
	m.nextOrderID = st.nextOrderID
	return nil
}

type memoryStage struct {
	parent      *MemoryTx
	orders      []model.Order
	links       []model.CustomerOrder
	audits      []model.AuditLog
	nextOrderID int64
}

func (s *memoryStage) Orders() repo.OrderRepository                 { return memOrders{s} }
func (s *memoryStage) CustomerOrders() repo.CustomerOrderRepository { return memLinks{s} }
func (s *memoryStage) AuditLogs() repo.AuditLogRepository           { return memAudits{s} }

type memOrders struct{ s *memoryStage }

func (r memOrders) Create(ctx context.Context, order model.Order) (int64, error) {
	if r.s.parent.FailOrderCreate != nil {
		return 0, r.s.parent.FailOrderCreate
	}
	order.ID = r.s.nextOrderID
	r.s.nextOrderID++
	r.s.orders = append(r.s.orders, order)
	return order.ID, nil
}

func (r memOrders) all() ([]model.Order, []model.CustomerOrder) {
	orders := append(append([]model.Order{}, r.s.parent.Orders...), r.s.orders...)
	links := append(append([]model.CustomerOrder{}, r.s.parent.Links...), r.s.links...)
	return orders, links
}

func (r memOrders) ListWithCustomer(ctx context.Context) ([]model.OrderView, error) {
	orders, links := r.all()
	out := make([]model.OrderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toView(o, links))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r memOrders) FindViewByID(ctx context.Context, orderID int64) (model.OrderView, error) {
	orders, links := r.all()
	for _, o := range orders {
		if o.ID == orderID {
			return toView(o, links), nil
		}
	}
	return model.OrderView{}, repo.ErrNotFound
}

func toView(o model.Order, links []model.CustomerOrder) model.OrderView {
	v := model.OrderView{
		ID:           o.ID,
		CreatedAt:    o.CreatedAt,
		Total:        o.Total,
		CustomerName: model.NoCustomerLabel,
	}
	for _, l := range links {
		if l.OrderID == o.ID {
			id := l.CustomerID
			v.CustomerID = &id
			v.CustomerName = ""
		}
	}
	return v
}

type memLinks struct{ s *memoryStage }

func (r memLinks) Create(ctx context.Context, link model.CustomerOrder) error {
	if r.s.parent.FailLinkCreate != nil {
		return r.s.parent.FailLinkCreate
	}
	link.ID = int64(len(r.s.parent.Links) + len(r.s.links) + 1)
	r.s.links = append(r.s.links, link)
	return nil
}

type memAudits struct{ s *memoryStage }

func (r memAudits) Create(ctx context.Context, log model.AuditLog) error {
	if r.s.parent.FailAuditCreate != nil {
		return r.s.parent.FailAuditCreate
	}
	r.s.audits = append(r.s.audits, log)
	return nil
}

func (r memAudits) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	return append(append([]model.AuditLog{}, r.s.parent.AuditLogs...), r.s.audits...), nil
}
