package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/utils"
)

type ProductController struct {
	DB *gorm.DB
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// CreateProduct -> item menu baru.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		RestaurantID: currentRestaurantID(c),
		Name:         req.Name,
		Description:  req.Description,
		Price:        utils.Round2(req.Price),
		Active:       true,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetAllProducts -> daftar menu restoran (default hanya yang aktif).
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	query := pc.DB.Where("restaurant_id = ?", currentRestaurantID(c))
	if c.Query("include_inactive") == "" {
		query = query.Where("active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// GetProductByID -> detail satu produk.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	productID, ok := paramUint(c, "product_id")
	if !ok {
		return
	}

	var product models.Product
	err := pc.DB.Where("id = ? AND restaurant_id = ?", productID, currentRestaurantID(c)).
		First(&product).Error
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}
