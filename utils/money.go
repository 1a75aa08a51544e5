package utils

import "github.com/shopspring/decimal"

// Helper uang fixed-point 2 desimal. Semua perbandingan jumlah pembayaran
// vs total dilakukan dalam sen supaya bebas drift floating point.

// Round2 -> membulatkan nilai uang ke 2 desimal.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Truncate2 -> memotong ke 2 desimal (selalu ke arah nol).
func Truncate2(v float64) float64 {
	return decimal.NewFromFloat(v).Truncate(2).InexactFloat64()
}

// Cents -> representasi integer dalam sen.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
