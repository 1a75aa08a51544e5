package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SessionStatusOpen   = "open"
	SessionStatusClosed = "closed"
)

// TableSession -> periode okupansi satu meja oleh satu rombongan.
// Invariant: maksimal satu sesi open per meja (dijaga oleh SessionManager).
type TableSession struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	TableID      uint       `gorm:"not null;index" json:"table_id"`
	Table        Table      `gorm:"foreignKey:TableID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	UserID       uint       `gorm:"not null" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	SessionKey   string     `gorm:"type:varchar(36);uniqueIndex" json:"session_key"`
	CustomerName string     `gorm:"type:varchar(255)" json:"customer_name"`
	PeopleCount  int        `gorm:"not null;default:1" json:"people_count"`
	Status       string     `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	OpenedAt     time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
	Orders       []Order    `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
}

func (s *TableSession) BeforeCreate(tx *gorm.DB) error {
	if s.SessionKey == "" {
		s.SessionKey = uuid.New().String()
	}
	return nil
}
