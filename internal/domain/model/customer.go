package model

import "time"

// 顧客
type Customer struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`

	//DNI（8桁の数字）
	DNI string `gorm:"type:char(8);not null;uniqueIndex" json:"dni"`

	//任意項目は空ならNULL
	Phone   *string `gorm:"type:varchar(30)" json:"phone"`
	Email   *string `gorm:"type:varchar(255)" json:"email"`
	Address *string `gorm:"type:varchar(255)" json:"address"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 画面表示用の「名前 苗字」
func (c Customer) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// 顧客が未選択のときの表示名
const NoCustomerLabel = "Sin cliente"
