package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/comandaflow/comanda-app/controllers"
	"github.com/comandaflow/comanda-app/models"
	"github.com/comandaflow/comanda-app/services"
)

func setupBillRouter(db *gorm.DB, userID, restaurantID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs(userID, restaurantID, "staff"))

	orders := services.NewOrderAggregator(db)
	billCtrl := controllers.NewBillController(db, services.NewBillEngine(db, orders))

	r.POST("/sessions/:session_id/bill", billCtrl.CreateBill)
	r.GET("/bills/:bill_id", billCtrl.GetBillByID)
	r.POST("/bills/:bill_id/split/equal", billCtrl.SplitEqual)
	r.POST("/bills/:bill_id/split/items", billCtrl.SplitByItems)
	r.POST("/bills/:bill_id/payments", billCtrl.AddPayment)
	r.POST("/bills/:bill_id/close", billCtrl.CloseBill)
	return r
}

// seedSessionWithOrders -> sesi open berisi dua order (100.00 dan 50.00).
func seedSessionWithOrders(t *testing.T, db *gorm.DB, tableID, userID uint) models.TableSession {
	t.Helper()

	sessions := services.NewSessionManager(db, services.NewTableRegistry(db))
	session, err := sessions.OpenSession(services.OpenSessionInput{TableID: tableID, UserID: userID})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}

	orders := services.NewOrderAggregator(db)
	_, err = orders.AddOrder(session.ID, []services.OrderItemInput{
		{ProductID: 1, Quantity: 2, UnitPrice: 50.00},
	}, "")
	if err != nil {
		t.Fatalf("failed to add order: %v", err)
	}
	_, err = orders.AddOrder(session.ID, []services.OrderItemInput{
		{ProductID: 2, Quantity: 1, UnitPrice: 50.00},
	}, "")
	if err != nil {
		t.Fatalf("failed to add order: %v", err)
	}
	return *session
}

func TestCreateBillEndpoint(t *testing.T) {
	db := setupTestDB(t)
	restaurant, user, table := seedTenant(t, db, "tenant-a")
	session := seedSessionWithOrders(t, db, table.ID, user.ID)

	r := setupBillRouter(db, user.ID, restaurant.ID)

	w := doJSON(t, r, "POST", fmt.Sprintf("/sessions/%d/bill", session.ID), gin.H{
		"service_fee_rate": 0.10,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var bill models.Bill
	assert.NoError(t, db.Where("session_id = ?", session.ID).First(&bill).Error)
	assert.InDelta(t, 150.00, bill.Subtotal, 0.001)
	assert.InDelta(t, 15.00, bill.ServiceFee, 0.001)
	assert.InDelta(t, 165.00, bill.Total, 0.001)

	// Masih ada bill open -> 409
	w = doJSON(t, r, "POST", fmt.Sprintf("/sessions/%d/bill", session.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateBillDefaultFeeFromSettings(t *testing.T) {
	db := setupTestDB(t)
	restaurant, user, table := seedTenant(t, db, "tenant-a")
	session := seedSessionWithOrders(t, db, table.ID, user.ID)

	r := setupBillRouter(db, user.ID, restaurant.ID)

	// Tanpa body: rate dari settings restoran (default 10%)
	w := doJSON(t, r, "POST", fmt.Sprintf("/sessions/%d/bill", session.ID), nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var bill models.Bill
	assert.NoError(t, db.Where("session_id = ?", session.ID).First(&bill).Error)
	assert.InDelta(t, 15.00, bill.ServiceFee, 0.001)
}

func TestSplitEqualEndpoint(t *testing.T) {
	db := setupTestDB(t)
	restaurant, user, table := seedTenant(t, db, "tenant-a")
	session := seedSessionWithOrders(t, db, table.ID, user.ID)

	engine := services.NewBillEngine(db, services.NewOrderAggregator(db))
	bill, err := engine.CreateBill(session.ID, 0.10)
	assert.NoError(t, err)

	r := setupBillRouter(db, user.ID, restaurant.ID)

	w := doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/split/equal", bill.ID), gin.H{"parts": 3})
	assert.Equal(t, http.StatusOK, w.Code)

	var splits []models.BillSplit
	assert.NoError(t, db.Where("bill_id = ?", bill.ID).Order("id").Find(&splits).Error)
	assert.Len(t, splits, 3)
	for _, s := range splits {
		assert.InDelta(t, 55.00, s.Amount, 0.001)
	}

	// parts=0 tertahan di binding -> 400
	w = doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/split/equal", bill.ID), gin.H{"parts": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSplitByItemsEndpoint(t *testing.T) {
	db := setupTestDB(t)
	restaurant, user, table := seedTenant(t, db, "tenant-a")
	session := seedSessionWithOrders(t, db, table.ID, user.ID)

	engine := services.NewBillEngine(db, services.NewOrderAggregator(db))
	bill, err := engine.CreateBill(session.ID, 0)
	assert.NoError(t, err)

	var items []models.OrderItem
	assert.NoError(t, db.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.session_id = ?", session.ID).Order("order_items.id").Find(&items).Error)
	assert.Len(t, items, 2)

	r := setupBillRouter(db, user.ID, restaurant.ID)

	w := doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/split/items", bill.ID), gin.H{
		"assignments": []gin.H{
			{"order_item_id": items[0].ID, "split_name": "Ana"},
			{"order_item_id": items[1].ID, "split_name": "Bruno"},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var splits []models.BillSplit
	assert.NoError(t, db.Where("bill_id = ?", bill.ID).Order("id").Find(&splits).Error)
	assert.Len(t, splits, 2)
	assert.Equal(t, "Ana", splits[0].Name)
	assert.InDelta(t, 100.00, splits[0].Amount, 0.001)
	assert.Equal(t, "Bruno", splits[1].Name)
	assert.InDelta(t, 50.00, splits[1].Amount, 0.001)

	// Item tanpa assignment -> 400
	w = doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/split/items", bill.ID), gin.H{
		"assignments": []gin.H{
			{"order_item_id": items[0].ID, "split_name": "Ana"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddPaymentEndpoint(t *testing.T) {
	db := setupTestDB(t)
	restaurant, user, table := seedTenant(t, db, "tenant-a")
	session := seedSessionWithOrders(t, db, table.ID, user.ID)

	engine := services.NewBillEngine(db, services.NewOrderAggregator(db))
	bill, err := engine.CreateBill(session.ID, 0.10)
	assert.NoError(t, err)

	r := setupBillRouter(db, user.ID, restaurant.ID)

	w := doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/payments", bill.ID), gin.H{
		"method": "pix",
		"amount": 65.00,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var got models.Bill
	assert.NoError(t, db.First(&got, bill.ID).Error)
	assert.Equal(t, models.BillStatusPartiallyPaid, got.Status)

	w = doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/payments", bill.ID), gin.H{
		"method": "card",
		"amount": 100.00,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.NoError(t, db.First(&got, bill.ID).Error)
	assert.Equal(t, models.BillStatusPaid, got.Status)

	// amount wajib dan > 0
	w = doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/payments", bill.ID), gin.H{"method": "cash"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCloseBillEndpoint(t *testing.T) {
	db := setupTestDB(t)
	restaurant, user, table := seedTenant(t, db, "tenant-a")
	session := seedSessionWithOrders(t, db, table.ID, user.ID)

	engine := services.NewBillEngine(db, services.NewOrderAggregator(db))
	bill, err := engine.CreateBill(session.ID, 0)
	assert.NoError(t, err)

	r := setupBillRouter(db, user.ID, restaurant.ID)

	w := doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/close", bill.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Bill
	assert.NoError(t, db.First(&got, bill.ID).Error)
	assert.Equal(t, models.BillStatusClosed, got.Status)
}

func TestBillCrossTenant(t *testing.T) {
	db := setupTestDB(t)
	_, userA, _ := seedTenant(t, db, "tenant-a")
	_, userB, tableB := seedTenant(t, db, "tenant-b")
	sessionB := seedSessionWithOrders(t, db, tableB.ID, userB.ID)

	engine := services.NewBillEngine(db, services.NewOrderAggregator(db))
	billB, err := engine.CreateBill(sessionB.ID, 0)
	assert.NoError(t, err)

	r := setupBillRouter(db, userA.ID, userA.RestaurantID)

	w := doJSON(t, r, "GET", fmt.Sprintf("/bills/%d", billB.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "POST", fmt.Sprintf("/bills/%d/payments", billB.ID), gin.H{"amount": 10.00})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
