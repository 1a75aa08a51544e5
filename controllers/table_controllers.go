package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/events"
	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/services"
	"github.com/comandaflow/comanda-app/utils"
)

type TableController struct {
	DB     *gorm.DB
	Tables *services.TableRegistry
}

func NewTableController(db *gorm.DB, tables *services.TableRegistry) *TableController {
	return &TableController{DB: db, Tables: tables}
}

// CreateTable -> menambahkan meja baru di salah satu area restoran.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		AreaID uint   `json:"area_id" binding:"required"`
		Number string `json:"number" binding:"required"`
		Seats  int    `json:"seats"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)

	var area models.Area
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", req.AreaID, restaurantID).
		First(&area).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("area not found"))
		return
	}

	table := models.Table{
		RestaurantID: restaurantID,
		AreaID:       area.ID,
		Number:       req.Number,
		Seats:        req.Seats,
		Status:       models.TableStatusAvailable,
	}
	if table.Seats <= 0 {
		table.Seats = 4
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (area=%d)", table.Number, table.AreaID)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> seluruh meja restoran, opsional filter status.
func (tc *TableController) GetAllTables(c *gin.Context) {
	query := tc.DB.Where("restaurant_id = ?", currentRestaurantID(c))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja.
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	table, err := findTableScoped(tc.DB, currentRestaurantID(c), tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTableStatus -> penulisan status manual (reserved/maintenance/
// available). Transisi occupied milik SessionManager; lewat sini ditolak
// supaya invariant sesi tidak bisa dilanggar dari luar.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	switch body.Status {
	case models.TableStatusAvailable, models.TableStatusReserved, models.TableStatusMaintenance:
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("status must be available, reserved or maintenance"))
		return
	}

	restaurantID := currentRestaurantID(c)
	table, err := findTableScoped(tc.DB, restaurantID, tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if table.Status == models.TableStatusOccupied {
		utils.RespondError(c, http.StatusConflict, errors.New("table has an active session"))
		return
	}

	table, err = tc.Tables.SetStatus(table.ID, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventTableUpdate,
		Data:  table,
	})

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> menghapus meja yang tidak punya sesi aktif.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	table, err := findTableScoped(tc.DB, currentRestaurantID(c), tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var active int64
	tc.DB.Model(&models.TableSession{}).
		Where("table_id = ? AND status = ?", table.ID, models.SessionStatusOpen).
		Count(&active)
	if active > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("table has an active session"))
		return
	}

	if err := tc.DB.Delete(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}
