package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/utils"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// Register -> bootstrap tenant baru: buat restoran + user admin pertama
// dalam satu transaksi.
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		RestaurantName string `json:"restaurant_name" binding:"required"`
		Name           string `json:"name" binding:"required"`
		Email          string `json:"email" binding:"required,email"`
		Password       string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var user models.User
	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		restaurant := models.Restaurant{
			Name:     req.RestaurantName,
			Slug:     slugify(req.RestaurantName),
			Settings: models.DefaultRestaurantSettings(),
		}
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}

		user = models.User{
			RestaurantID: restaurant.ID,
			Name:         req.Name,
			Email:        req.Email,
			Password:     string(hashed),
			Role:         "admin",
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New restaurant registered: %s (admin=%s)", req.RestaurantName, user.Email)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant registered", gin.H{
		"user_id":       user.ID,
		"restaurant_id": user.RestaurantID,
	})
}

// Login -> return JWT dengan klaim user + restoran.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.RestaurantID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s", user.Email)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": strings.ToLower(user.Role),
	})
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
