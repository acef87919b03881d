package model

// 顧客と注文の関連
// 1注文につき関連は最大1件
type CustomerOrder struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	OrderID    int64     `gorm:"not null;uniqueIndex" json:"order_id"`
	Order      *Order    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
