package builder

import (
	"errors"
	"fmt"
)

var (
	// 数量が正の整数でない
	ErrInvalidQuantity = errors.New("invalid quantity")

	// 在庫（選択時点のスナップショット）が足りない
	ErrInsufficientStock = errors.New("insufficient stock")

	// 削除対象の明細が選ばれていない
	ErrNoSelection = errors.New("no line selected")

	// 存在しない明細を指定した
	ErrUnknownLine = errors.New("unknown line")

	// 明細が0件のまま確定しようとした
	ErrEmptyOrder = errors.New("empty order")

	// 保持している合計・表示中の合計が再計算と合わない
	ErrTotalMismatch = errors.New("total mismatch")

	// 保存に失敗した（rollback済み）
	ErrPersistence = errors.New("persistence error")
)

// 在庫不足。残り在庫数を持つ。
type InsufficientStockError struct {
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d available", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// 保存エラー。DB側のエラーをそのまま包む。
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
