package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
)

// TransferCoordinator memindahkan sesi open dari satu meja ke meja lain.
// Ketiga penulisan (meja asal, meja tujuan, sesi) berjalan dalam satu
// transaksi: gagal di tengah tidak boleh meninggalkan dua meja occupied
// untuk satu sesi, ataupun nol.
type TransferCoordinator struct {
	DB     *gorm.DB
	Tables *TableRegistry
}

func NewTransferCoordinator(db *gorm.DB, tables *TableRegistry) *TransferCoordinator {
	return &TransferCoordinator{DB: db, Tables: tables}
}

// Transfer -> memindahkan sesi ke meja tujuan yang available.
func (tc *TransferCoordinator) Transfer(sessionID, newTableID uint) (*models.TableSession, error) {
	var session models.TableSession

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND status = ?", sessionID, models.SessionStatusOpen).
			First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		var dest models.Table
		if err := tx.First(&dest, newTableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTableNotFound
			}
			return err
		}

		claimed, err := tc.Tables.claimTx(tx, dest.ID, models.TableStatusAvailable, models.TableStatusOccupied)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrTableUnavailable
		}

		originTableID := session.TableID
		session.TableID = dest.ID
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return tc.Tables.setStatusTx(tx, originTableID, models.TableStatusAvailable)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}
