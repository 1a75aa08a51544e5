package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash       = "cash"
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodPix        = "pix"
)

// Payment -> entri ledger pembayaran terhadap sebuah bill.
// Append-only: tidak pernah di-update atau dihapus.
type Payment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	BillID      uint       `gorm:"not null;index" json:"bill_id"`
	Bill        Bill       `gorm:"foreignKey:BillID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SplitID     *uint      `gorm:"index" json:"split_id,omitempty"`
	Split       *BillSplit `gorm:"foreignKey:SplitID" json:"-"`
	Method      string     `gorm:"type:varchar(50);not null;default:'cash'" json:"method"`
	Amount      float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	UserID      uint       `gorm:"not null" json:"user_id"`
	User        User       `gorm:"foreignKey:UserID" json:"-"`
	Notes       string     `gorm:"type:text" json:"notes"`
	ReferenceID string     `gorm:"type:varchar(36);uniqueIndex" json:"reference_id"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ReferenceID == "" {
		p.ReferenceID = uuid.New().String()
	}
	return nil
}
