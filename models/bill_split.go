package models

import "time"

// BillSplit -> porsi bernama dari total sebuah bill.
// Jumlah seluruh split sebuah bill selalu sama persis dengan bill.Total.
type BillSplit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BillID    uint      `gorm:"not null;index" json:"bill_id"`
	Bill      Bill      `gorm:"foreignKey:BillID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Paid      bool      `gorm:"not null;default:false" json:"paid"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
