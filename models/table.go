package models

import "time"

// Status meja. Transisi available <-> occupied hanya boleh dilakukan oleh
// SessionManager dan TransferCoordinator; reserved/maintenance diatur manual.
const (
	TableStatusAvailable   = "available"
	TableStatusOccupied    = "occupied"
	TableStatusReserved    = "reserved"
	TableStatusMaintenance = "maintenance"
)

type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AreaID       uint       `gorm:"not null;uniqueIndex:idx_area_table_number" json:"area_id"`
	Area         Area       `gorm:"foreignKey:AreaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Number       string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_area_table_number" json:"number"`
	Seats        int        `gorm:"not null;default:4" json:"seats"`
	Status       string     `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
