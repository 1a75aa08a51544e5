package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

type Order struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	SessionID   uint         `gorm:"not null;index" json:"session_id"`
	Session     TableSession `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status      string       `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount float64      `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_amount"`
	Notes       string       `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
	OrderItems  []OrderItem  `gorm:"foreignKey:OrderID" json:"order_items"`
}

// IsFinal -> order dengan status terminal tidak boleh berubah lagi.
func (o *Order) IsFinal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCanceled
}
