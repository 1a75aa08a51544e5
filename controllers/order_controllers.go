package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/events"
	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/services"
	"github.com/comandaflow/comanda-app/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderAggregator
}

func NewOrderController(db *gorm.DB, orders *services.OrderAggregator) *OrderController {
	return &OrderController{DB: db, Orders: orders}
}

// CreateOrder -> membuat order di sebuah sesi. Harga item diambil dari
// tabel produk di sini, bukan dari client.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	type itemReq struct {
		ProductID uint   `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,gt=0"`
		Notes     string `json:"notes"`
	}
	var body struct {
		Items []itemReq `json:"items" binding:"required"`
		Notes string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findSessionScoped(oc.DB, restaurantID, sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]services.OrderItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		var product models.Product
		err := oc.DB.Where("id = ? AND restaurant_id = ? AND active = ?",
			item.ProductID, restaurantID, true).First(&product).Error
		if err != nil {
			utils.RespondError(c, http.StatusNotFound,
				fmt.Errorf("product %d not found", item.ProductID))
			return
		}
		items = append(items, services.OrderItemInput{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Notes:     item.Notes,
		})
	}

	order, err := oc.Orders.AddOrder(sessionID, items, body.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventOrderCreate,
		Data:  order,
	})

	utils.InfoLogger.Printf("Order %d created on session %d (total=%.2f)", order.ID, sessionID, order.TotalAmount)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetSessionOrders -> seluruh order milik satu sesi.
func (oc *OrderController) GetSessionOrders(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	if _, err := findSessionScoped(oc.DB, currentRestaurantID(c), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Where("session_id = ?", sessionID).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetSessionSubtotal -> subtotal berjalan sesi (tanpa order canceled).
func (oc *OrderController) GetSessionSubtotal(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	if _, err := findSessionScoped(oc.DB, currentRestaurantID(c), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	subtotal, err := oc.Orders.SessionSubtotal(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session subtotal", gin.H{
		"session_id": sessionID,
		"subtotal":   subtotal,
	})
}

// UpdateOrderStatus -> transisi status order (pending/preparing/
// delivered/canceled).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := paramUint(c, "order_id")
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

	restaurantID := currentRestaurantID(c)
	if _, err := findOrderScoped(oc.DB, restaurantID, orderID); err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order, err := oc.Orders.UpdateOrderStatus(orderID, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventOrderUpdate,
		Data:  order,
	})

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
