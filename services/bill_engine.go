package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/utils"
)

// BillEngine menurunkan bill dari order-order sebuah sesi, memecahnya
// menjadi split, dan mencatat pembayaran sebagai ledger append-only.
type BillEngine struct {
	DB     *gorm.DB
	Orders *OrderAggregator
}

func NewBillEngine(db *gorm.DB, orders *OrderAggregator) *BillEngine {
	return &BillEngine{DB: db, Orders: orders}
}

// CreateBill -> membuat bill open untuk sesi. Satu sesi hanya boleh punya
// satu bill non-closed pada satu waktu.
func (be *BillEngine) CreateBill(sessionID uint, serviceFeeRate float64) (*models.Bill, error) {
	if serviceFeeRate < 0 {
		return nil, ErrInvalidAmount
	}

	var bill models.Bill
	err := be.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Bill
		err := tx.Where("session_id = ? AND status <> ?", sessionID, models.BillStatusClosed).
			First(&existing).Error
		if err == nil {
			return ErrBillAlreadyOpen
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		subtotal, err := be.Orders.sessionSubtotalTx(tx, sessionID)
		if err != nil {
			return err
		}

		subtotalD := decimal.NewFromFloat(subtotal)
		feeD := subtotalD.Mul(decimal.NewFromFloat(serviceFeeRate)).Round(2)

		bill = models.Bill{
			SessionID:  sessionID,
			Subtotal:   subtotalD.InexactFloat64(),
			ServiceFee: feeD.InexactFloat64(),
			Total:      subtotalD.Add(feeD).InexactFloat64(),
			Status:     models.BillStatusOpen,
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// SplitEqual -> memecah bill menjadi `parts` bagian sama besar.
// Nilai per bagian dipotong ke bawah ke 2 desimal; sisa pembulatan
// seluruhnya diserap split terakhir sehingga jumlah split == total persis.
// Split lama untuk bill tersebut diganti (delete lalu insert, satu tx).
func (be *BillEngine) SplitEqual(billID uint, parts int) ([]models.BillSplit, error) {
	if parts < 1 {
		return nil, ErrInvalidPartCount
	}

	var splits []models.BillSplit
	err := be.DB.Transaction(func(tx *gorm.DB) error {
		bill, err := findBillTx(tx, billID)
		if err != nil {
			return err
		}

		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillSplit{}).Error; err != nil {
			return err
		}

		totalD := decimal.NewFromFloat(bill.Total)
		partsD := decimal.NewFromInt(int64(parts))
		perPart := totalD.Div(partsD).Truncate(2)
		lastPart := totalD.Sub(perPart.Mul(decimal.NewFromInt(int64(parts - 1))))

		splits = make([]models.BillSplit, 0, parts)
		for i := 0; i < parts; i++ {
			amount := perPart
			if i == parts-1 {
				amount = lastPart
			}
			splits = append(splits, models.BillSplit{
				BillID: bill.ID,
				Name:   fmt.Sprintf("Part %d", i+1),
				Amount: amount.InexactFloat64(),
			})
		}
		return tx.Create(&splits).Error
	})
	if err != nil {
		return nil, err
	}
	return splits, nil
}

type ItemAssignment struct {
	OrderItemID uint   `json:"order_item_id"`
	SplitName   string `json:"split_name"`
}

// SplitByItems -> mengelompokkan item order berdasarkan nama split.
// Setiap item non-canceled harus punya assignment (ErrUnassignedItems),
// dan jumlah seluruh kelompok harus sama persis dengan total bill
// (ErrSplitMismatch) -- bill dengan service fee tidak bisa dipecah per
// item karena fee bukan milik item manapun.
func (be *BillEngine) SplitByItems(billID uint, assignments []ItemAssignment) ([]models.BillSplit, error) {
	assigned := make(map[uint]string, len(assignments))
	for _, a := range assignments {
		if a.SplitName == "" {
			return nil, ErrUnassignedItems
		}
		assigned[a.OrderItemID] = a.SplitName
	}

	var splits []models.BillSplit
	err := be.DB.Transaction(func(tx *gorm.DB) error {
		bill, err := findBillTx(tx, billID)
		if err != nil {
			return err
		}

		var items []models.OrderItem
		err = tx.Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.session_id = ? AND orders.status <> ?", bill.SessionID, models.OrderStatusCanceled).
			Order("order_items.id").
			Find(&items).Error
		if err != nil {
			return err
		}

		sums := make(map[string]decimal.Decimal)
		var names []string
		for _, item := range items {
			name, ok := assigned[item.ID]
			if !ok {
				return ErrUnassignedItems
			}
			if _, seen := sums[name]; !seen {
				names = append(names, name)
			}
			sums[name] = sums[name].Add(decimal.NewFromFloat(item.TotalPrice))
		}

		grandTotal := decimal.Zero
		for _, name := range names {
			grandTotal = grandTotal.Add(sums[name])
		}
		if !grandTotal.Equal(decimal.NewFromFloat(bill.Total)) {
			return ErrSplitMismatch
		}

		if err := tx.Where("bill_id = ?", bill.ID).Delete(&models.BillSplit{}).Error; err != nil {
			return err
		}

		splits = make([]models.BillSplit, 0, len(names))
		for _, name := range names {
			splits = append(splits, models.BillSplit{
				BillID: bill.ID,
				Name:   name,
				Amount: sums[name].InexactFloat64(),
			})
		}
		return tx.Create(&splits).Error
	})
	if err != nil {
		return nil, err
	}
	return splits, nil
}

type PaymentInput struct {
	BillID  uint
	SplitID *uint
	Method  string
	Amount  float64
	UserID  uint
	Notes   string
}

// AddPayment -> menambah entri ledger pembayaran dan, di transaksi yang
// sama, menurunkan status split/bill dari jumlah kumulatif pembayaran.
// Overpayment diterima: bill cukup berstatus paid, kelebihan tidak
// dilacak sebagai kembalian oleh komponen ini.
func (be *BillEngine) AddPayment(input PaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.Method == "" {
		input.Method = models.PaymentMethodCash
	}

	var payment models.Payment
	err := be.DB.Transaction(func(tx *gorm.DB) error {
		bill, err := findBillTx(tx, input.BillID)
		if err != nil {
			return err
		}

		var split *models.BillSplit
		if input.SplitID != nil {
			split = &models.BillSplit{}
			err := tx.Where("id = ? AND bill_id = ?", *input.SplitID, bill.ID).
				First(split).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrSplitNotFound
				}
				return err
			}
		}

		payment = models.Payment{
			BillID:  bill.ID,
			SplitID: input.SplitID,
			Method:  input.Method,
			Amount:  input.Amount,
			UserID:  input.UserID,
			Notes:   input.Notes,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if split != nil && !split.Paid {
			splitPaid, err := sumPaymentsTx(tx, "split_id = ?", split.ID)
			if err != nil {
				return err
			}
			if utils.Cents(splitPaid) >= utils.Cents(split.Amount) {
				split.Paid = true
				if err := tx.Save(split).Error; err != nil {
					return err
				}
			}
		}

		totalPaid, err := sumPaymentsTx(tx, "bill_id = ?", bill.ID)
		if err != nil {
			return err
		}

		// Status closed adalah keputusan manual; recompute tidak menimpanya.
		if bill.Status != models.BillStatusClosed {
			status := bill.Status
			switch {
			case utils.Cents(totalPaid) >= utils.Cents(bill.Total):
				status = models.BillStatusPaid
			case utils.Cents(totalPaid) > 0:
				status = models.BillStatusPartiallyPaid
			}
			if status != bill.Status {
				bill.Status = status
				if err := tx.Save(bill).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CloseBill -> menutup bill tanpa syarat (override manual setelah
// rekonsiliasi). Membebaskan meja tetap urusan SessionManager.
func (be *BillEngine) CloseBill(billID uint) (*models.Bill, error) {
	var bill *models.Bill
	err := be.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		bill, err = findBillTx(tx, billID)
		if err != nil {
			return err
		}
		bill.Status = models.BillStatusClosed
		return tx.Save(bill).Error
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}

func findBillTx(tx *gorm.DB, billID uint) (*models.Bill, error) {
	var bill models.Bill
	if err := tx.First(&bill, billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func sumPaymentsTx(tx *gorm.DB, cond string, arg interface{}) (float64, error) {
	var sum float64
	err := tx.Model(&models.Payment{}).
		Where(cond, arg).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
