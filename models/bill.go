package models

import "time"

const (
	BillStatusOpen          = "open"
	BillStatusPartiallyPaid = "partially_paid"
	BillStatusPaid          = "paid"
	BillStatusClosed        = "closed"
)

// Bill -> dokumen penagihan yang diturunkan dari order-order satu sesi.
// Maksimal satu bill non-closed per sesi.
type Bill struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	SessionID  uint         `gorm:"not null;index" json:"session_id"`
	Session    TableSession `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Subtotal   float64      `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	ServiceFee float64      `gorm:"type:decimal(12,2);not null" json:"service_fee"`
	Total      float64      `gorm:"type:decimal(12,2);not null" json:"total"`
	Status     string       `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
	Splits     []BillSplit  `gorm:"foreignKey:BillID" json:"splits,omitempty"`
	Payments   []Payment    `gorm:"foreignKey:BillID" json:"payments,omitempty"`
}

// IsOpen -> true selama bill masih menunggu pelunasan.
func (b *Bill) IsOpen() bool {
	return b.Status == BillStatusOpen || b.Status == BillStatusPartiallyPaid
}
