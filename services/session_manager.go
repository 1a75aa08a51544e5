package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
)

// Jumlah percobaan transaksi OpenSession sebelum menyerah dengan ErrConflict.
const openSessionRetries = 3

// SessionManager memiliki transisi status meja available <-> occupied.
// Semua mutasi multi-entitas berjalan dalam satu transaksi supaya tidak
// pernah ada dua sesi open untuk meja yang sama, walaupun ada beberapa
// instance proses yang berjalan bersamaan.
type SessionManager struct {
	DB     *gorm.DB
	Tables *TableRegistry
}

func NewSessionManager(db *gorm.DB, tables *TableRegistry) *SessionManager {
	return &SessionManager{DB: db, Tables: tables}
}

type OpenSessionInput struct {
	TableID      uint
	UserID       uint
	CustomerName string
	PeopleCount  int
}

// OpenSession -> membuka sesi baru di meja yang available.
// Klaim meja memakai conditional update: dari dua pemanggil yang balapan
// di meja yang sama, tepat satu berhasil dan sisanya ErrTableUnavailable.
func (sm *SessionManager) OpenSession(input OpenSessionInput) (*models.TableSession, error) {
	if input.PeopleCount < 1 {
		input.PeopleCount = 1
	}

	var lastErr error
	for attempt := 0; attempt < openSessionRetries; attempt++ {
		var session models.TableSession

		err := sm.DB.Transaction(func(tx *gorm.DB) error {
			var table models.Table
			if err := tx.First(&table, input.TableID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTableNotFound
				}
				return err
			}

			claimed, err := sm.Tables.claimTx(tx, table.ID, models.TableStatusAvailable, models.TableStatusOccupied)
			if err != nil {
				return err
			}
			if !claimed {
				return ErrTableUnavailable
			}

			session = models.TableSession{
				TableID:      table.ID,
				UserID:       input.UserID,
				CustomerName: input.CustomerName,
				PeopleCount:  input.PeopleCount,
				Status:       models.SessionStatusOpen,
				OpenedAt:     time.Now(),
			}
			return tx.Create(&session).Error
		})
		if err == nil {
			return &session, nil
		}
		if !isRetryableTxError(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrConflict, lastErr)
}

// CloseSession -> menutup sesi dan mengembalikan meja ke available.
// Ditolak selama masih ada bill open/partially_paid (ErrOpenBillExists).
func (sm *SessionManager) CloseSession(sessionID uint) (*models.TableSession, error) {
	var session models.TableSession

	err := sm.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if session.Status != models.SessionStatusOpen {
			return ErrSessionNotFound
		}

		var bill models.Bill
		err := tx.Where("session_id = ? AND status IN ?", session.ID,
			[]string{models.BillStatusOpen, models.BillStatusPartiallyPaid}).
			First(&bill).Error
		if err == nil {
			return ErrOpenBillExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		session.Status = models.SessionStatusClosed
		session.ClosedAt = &now
		if err := tx.Save(&session).Error; err != nil {
			return err
		}
		return sm.Tables.setStatusTx(tx, session.TableID, models.TableStatusAvailable)
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActiveByTable -> sesi open untuk meja, atau nil jika tidak ada.
func (sm *SessionManager) FindActiveByTable(tableID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := sm.DB.Where("table_id = ? AND status = ?", tableID, models.SessionStatusOpen).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// isRetryableTxError -> konflik level storage yang layak dicoba ulang
// (deadlock MySQL, lock SQLite). Error domain tidak pernah retryable.
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "try restarting transaction")
}
