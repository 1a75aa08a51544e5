package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/events"
	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/services"
	"github.com/comandaflow/comanda-app/utils"
)

type BillController struct {
	DB    *gorm.DB
	Bills *services.BillEngine
}

func NewBillController(db *gorm.DB, bills *services.BillEngine) *BillController {
	return &BillController{DB: db, Bills: bills}
}

// CreateBill -> menerbitkan bill untuk sesi. Jika service_fee_rate tidak
// dikirim, dipakai rate dari settings restoran.
func (bc *BillController) CreateBill(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		ServiceFeeRate *float64 `json:"service_fee_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findSessionScoped(bc.DB, restaurantID, sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	feeRate := 0.0
	if req.ServiceFeeRate != nil {
		feeRate = *req.ServiceFeeRate
	} else {
		var restaurant models.Restaurant
		if err := bc.DB.First(&restaurant, restaurantID).Error; err == nil {
			feeRate = restaurant.Settings.ServiceFeeRate
		}
	}

	bill, err := bc.Bills.CreateBill(sessionID, feeRate)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventBillCreate,
		Data:  bill,
	})

	utils.InfoLogger.Printf("Bill %d created for session %d (total=%.2f)", bill.ID, sessionID, bill.Total)
	utils.RespondJSON(c, http.StatusCreated, "Bill created", bill)
}

// GetBillByID -> bill beserta split dan ledger pembayarannya.
func (bc *BillController) GetBillByID(c *gin.Context) {
	billID, ok := paramUint(c, "bill_id")
	if !ok {
		return
	}

	if _, err := findBillScoped(bc.DB, currentRestaurantID(c), billID); err != nil {
		respondServiceError(c, err)
		return
	}

	var bill models.Bill
	if err := bc.DB.Preload("Splits").Preload("Payments").First(&bill, billID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

// SplitEqual -> memecah bill menjadi n bagian sama besar.
func (bc *BillController) SplitEqual(c *gin.Context) {
	billID, ok := paramUint(c, "bill_id")
	if !ok {
		return
	}

	var req struct {
		Parts int `json:"parts" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findBillScoped(bc.DB, restaurantID, billID); err != nil {
		respondServiceError(c, err)
		return
	}

	splits, err := bc.Bills.SplitEqual(billID, req.Parts)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventSplitUpdate,
		Data:  splits,
	})

	utils.RespondJSON(c, http.StatusOK, "Bill split", splits)
}

// SplitByItems -> memecah bill berdasarkan assignment item -> nama split.
func (bc *BillController) SplitByItems(c *gin.Context) {
	billID, ok := paramUint(c, "bill_id")
	if !ok {
		return
	}

	var req struct {
		Assignments []services.ItemAssignment `json:"assignments" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findBillScoped(bc.DB, restaurantID, billID); err != nil {
		respondServiceError(c, err)
		return
	}

	splits, err := bc.Bills.SplitByItems(billID, req.Assignments)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventSplitUpdate,
		Data:  splits,
	})

	utils.RespondJSON(c, http.StatusOK, "Bill split by items", splits)
}

// AddPayment -> mencatat pembayaran terhadap bill atau salah satu split.
// Tidak ada integrasi gateway di sini: hanya fakta pembayarannya.
func (bc *BillController) AddPayment(c *gin.Context) {
	billID, ok := paramUint(c, "bill_id")
	if !ok {
		return
	}

	var req struct {
		SplitID *uint   `json:"split_id"`
		Method  string  `json:"method"`
		Amount  float64 `json:"amount" binding:"required"`
		Notes   string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findBillScoped(bc.DB, restaurantID, billID); err != nil {
		respondServiceError(c, err)
		return
	}

	payment, err := bc.Bills.AddPayment(services.PaymentInput{
		BillID:  billID,
		SplitID: req.SplitID,
		Method:  req.Method,
		Amount:  req.Amount,
		UserID:  currentUserID(c),
		Notes:   req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventPaymentCreate,
		Data:  payment,
	})

	utils.InfoLogger.Printf("Payment %.2f recorded on bill %d", payment.Amount, billID)
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// CloseBill -> menutup bill secara manual setelah rekonsiliasi.
func (bc *BillController) CloseBill(c *gin.Context) {
	billID, ok := paramUint(c, "bill_id")
	if !ok {
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findBillScoped(bc.DB, restaurantID, billID); err != nil {
		respondServiceError(c, err)
		return
	}

	bill, err := bc.Bills.CloseBill(billID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventBillUpdate,
		Data:  bill,
	})

	utils.RespondJSON(c, http.StatusOK, "Bill closed", bill)
}
