package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/utils"
)

type AreaController struct {
	DB *gorm.DB
}

func NewAreaController(db *gorm.DB) *AreaController {
	return &AreaController{DB: db}
}

// CreateArea -> menambahkan area baru (salão, varanda, dst).
func (ac *AreaController) CreateArea(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	area := models.Area{
		RestaurantID: currentRestaurantID(c),
		Name:         req.Name,
	}
	if err := ac.DB.Create(&area).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Area created", area)
}

// GetAllAreas -> seluruh area milik restoran.
func (ac *AreaController) GetAllAreas(c *gin.Context) {
	var areas []models.Area
	if err := ac.DB.Where("restaurant_id = ?", currentRestaurantID(c)).Find(&areas).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of areas", areas)
}
