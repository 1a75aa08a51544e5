package models

import "time"

// RestaurantSettings disimpan sebagai JSON di kolom settings.
// Serialisasi hanya terjadi di boundary storage, bukan di business logic.
type RestaurantSettings struct {
	ServiceFeeRate float64 `json:"service_fee_rate"`
	Currency       string  `json:"currency"`
	Timezone       string  `json:"timezone"`
}

type Restaurant struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	Name      string             `gorm:"type:varchar(255);not null" json:"name"`
	Slug      string             `gorm:"type:varchar(100);unique;not null" json:"slug"`
	Settings  RestaurantSettings `gorm:"serializer:json" json:"settings"`
	CreatedAt time.Time          `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time          `gorm:"not null" json:"updated_at"`
}

func DefaultRestaurantSettings() RestaurantSettings {
	return RestaurantSettings{
		ServiceFeeRate: 0.10,
		Currency:       "BRL",
		Timezone:       "America/Sao_Paulo",
	}
}
