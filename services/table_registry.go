package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
)

// TableRegistry -> pemegang status meja. Penulisan status yang terkait
// sesi (available <-> occupied) hanya boleh lewat helper transaksional di
// bawah, dipanggil oleh SessionManager dan TransferCoordinator.
type TableRegistry struct {
	DB *gorm.DB
}

func NewTableRegistry(db *gorm.DB) *TableRegistry {
	return &TableRegistry{DB: db}
}

// SetStatus -> tulis status tanpa syarat, tanpa efek samping ke sesi.
func (tr *TableRegistry) SetStatus(tableID uint, status string) (*models.Table, error) {
	var table models.Table
	if err := tr.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}

	table.Status = status
	if err := tr.DB.Save(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

// IsAvailable -> true hanya jika status meja 'available'.
func (tr *TableRegistry) IsAvailable(tableID uint) (bool, error) {
	var table models.Table
	if err := tr.DB.First(&table, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTableNotFound
		}
		return false, err
	}
	return table.Status == models.TableStatusAvailable, nil
}

// claimTx -> conditional update status meja dalam satu statement.
// RowsAffected == 0 berarti predikat status tidak terpenuhi (meja sudah
// diambil pihak lain); pemanggil yang menentukan errornya.
func (tr *TableRegistry) claimTx(tx *gorm.DB, tableID uint, from, to string) (bool, error) {
	res := tx.Model(&models.Table{}).
		Where("id = ? AND status = ?", tableID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// setStatusTx -> tulis status di dalam transaksi pemanggil.
func (tr *TableRegistry) setStatusTx(tx *gorm.DB, tableID uint, status string) error {
	return tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		Update("status", status).Error
}
