package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
)

// OrderAggregator menempelkan order (beserta item) ke sebuah sesi dan
// menghitung subtotal berjalan. Semua aritmetika uang lewat decimal
// supaya total tersimpan tidak pernah drift.
type OrderAggregator struct {
	DB *gorm.DB
}

func NewOrderAggregator(db *gorm.DB) *OrderAggregator {
	return &OrderAggregator{DB: db}
}

type OrderItemInput struct {
	ProductID uint
	Quantity  int
	UnitPrice float64
	Notes     string
}

// AddOrder -> membuat order baru di sesi yang masih open.
// total_price per item = quantity * unit_price (2 desimal), ditulis sekali
// dan tidak pernah dihitung ulang.
func (oa *OrderAggregator) AddOrder(sessionID uint, items []OrderItemInput, notes string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity < 1 || item.UnitPrice < 0 {
			return nil, ErrInvalidAmount
		}
	}

	var order models.Order
	err := oa.DB.Transaction(func(tx *gorm.DB) error {
		var session models.TableSession
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.Status != models.SessionStatusOpen {
			return ErrSessionClosed
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			lineTotal := decimal.NewFromFloat(item.UnitPrice).
				Mul(decimal.NewFromInt(int64(item.Quantity))).
				Round(2)
			total = total.Add(lineTotal)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:  item.ProductID,
				Quantity:   item.Quantity,
				UnitPrice:  item.UnitPrice,
				TotalPrice: lineTotal.InexactFloat64(),
				Notes:      item.Notes,
			})
		}

		order = models.Order{
			SessionID:   session.ID,
			Status:      models.OrderStatusPending,
			TotalAmount: total.InexactFloat64(),
			Notes:       notes,
			OrderItems:  orderItems,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus -> transisi status order. Order yang sudah final
// (delivered/canceled) tidak bisa diubah lagi.
func (oa *OrderAggregator) UpdateOrderStatus(orderID uint, status string) (*models.Order, error) {
	switch status {
	case models.OrderStatusPending, models.OrderStatusPreparing,
		models.OrderStatusDelivered, models.OrderStatusCanceled:
	default:
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := oa.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.IsFinal() {
			return ErrOrderFinalized
		}
		order.Status = status
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SessionSubtotal -> jumlah total_amount seluruh order sesi, tanpa order
// yang berstatus canceled.
func (oa *OrderAggregator) SessionSubtotal(sessionID uint) (float64, error) {
	return oa.sessionSubtotalTx(oa.DB, sessionID)
}

func (oa *OrderAggregator) sessionSubtotalTx(tx *gorm.DB, sessionID uint) (float64, error) {
	var session models.TableSession
	if err := tx.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrSessionNotFound
		}
		return 0, err
	}

	var orders []models.Order
	if err := tx.Where("session_id = ? AND status <> ?", sessionID, models.OrderStatusCanceled).
		Find(&orders).Error; err != nil {
		return 0, err
	}

	subtotal := decimal.Zero
	for _, order := range orders {
		subtotal = subtotal.Add(decimal.NewFromFloat(order.TotalAmount))
	}
	return subtotal.Round(2).InexactFloat64(), nil
}
