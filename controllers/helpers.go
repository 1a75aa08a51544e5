package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/services"
	"github.com/comandaflow/comanda-app/utils"
)

// respondServiceError -> memetakan taksonomi error service ke status HTTP.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		utils.RespondError(c, http.StatusNotFound, err)
	case services.IsValidation(err):
		utils.RespondError(c, http.StatusBadRequest, err)
	case services.IsInvalidState(err):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("unexpected service error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("user_id")
	id, _ := v.(uint)
	return id
}

func currentRestaurantID(c *gin.Context) uint {
	v, _ := c.Get("restaurant_id")
	id, _ := v.(uint)
	return id
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

// Resolusi kepemilikan: setiap id yang datang dari request harus
// di-resolve di dalam restoran si pemanggil sebelum menyentuh core.

func findTableScoped(db *gorm.DB, restaurantID, tableID uint) (*models.Table, error) {
	var table models.Table
	err := db.Where("id = ? AND restaurant_id = ?", tableID, restaurantID).First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrTableNotFound
		}
		return nil, err
	}
	return &table, nil
}

func findSessionScoped(db *gorm.DB, restaurantID, sessionID uint) (*models.TableSession, error) {
	var session models.TableSession
	err := db.Joins("JOIN tables ON tables.id = table_sessions.table_id").
		Where("table_sessions.id = ? AND tables.restaurant_id = ?", sessionID, restaurantID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func findBillScoped(db *gorm.DB, restaurantID, billID uint) (*models.Bill, error) {
	var bill models.Bill
	err := db.Joins("JOIN table_sessions ON table_sessions.id = bills.session_id").
		Joins("JOIN tables ON tables.id = table_sessions.table_id").
		Where("bills.id = ? AND tables.restaurant_id = ?", billID, restaurantID).
		First(&bill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func findOrderScoped(db *gorm.DB, restaurantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := db.Joins("JOIN table_sessions ON table_sessions.id = orders.session_id").
		Joins("JOIN tables ON tables.id = table_sessions.table_id").
		Where("orders.id = ? AND tables.restaurant_id = ?", orderID, restaurantID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}
