package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comandaflow/comanda-app/models"
)

func TestAddOrder(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, restaurant.ID)
	table := seedTable(t, db, restaurant.ID, "M1", models.TableStatusAvailable)
	session := openSessionFor(t, db, table.ID, user.ID)

	orders := NewOrderAggregator(db)

	order, err := orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 1, Quantity: 2, UnitPrice: 24.90},
		{ProductID: 2, Quantity: 1, UnitPrice: 12.50},
	}, "sem cebola")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, 49.80, order.OrderItems[0].TotalPrice)
	assert.Equal(t, 12.50, order.OrderItems[1].TotalPrice)
	assert.Equal(t, 62.30, order.TotalAmount)
}

func TestAddOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, restaurant.ID)
	table := seedTable(t, db, restaurant.ID, "M1", models.TableStatusAvailable)
	session := openSessionFor(t, db, table.ID, user.ID)

	orders := NewOrderAggregator(db)

	_, err := orders.AddOrder(session.ID, nil, "")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 1, Quantity: 0, UnitPrice: 10.00},
	}, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = orders.AddOrder(999, []OrderItemInput{
		{ProductID: 1, Quantity: 1, UnitPrice: 10.00},
	}, "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAddOrderSessionClosed(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, restaurant.ID)
	table := seedTable(t, db, restaurant.ID, "M1", models.TableStatusAvailable)
	session := openSessionFor(t, db, table.ID, user.ID)

	sm := NewSessionManager(db, NewTableRegistry(db))
	_, err := sm.CloseSession(session.ID)
	assert.NoError(t, err)

	orders := NewOrderAggregator(db)
	_, err = orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 1, Quantity: 1, UnitPrice: 10.00},
	}, "")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, restaurant.ID)
	table := seedTable(t, db, restaurant.ID, "M1", models.TableStatusAvailable)
	session := openSessionFor(t, db, table.ID, user.ID)

	orders := NewOrderAggregator(db)
	order, err := orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 1, Quantity: 1, UnitPrice: 10.00},
	}, "")
	assert.NoError(t, err)

	_, err = orders.UpdateOrderStatus(order.ID, "frying")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := orders.UpdateOrderStatus(order.ID, models.OrderStatusDelivered)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	// Status terminal tidak bisa diubah lagi
	_, err = orders.UpdateOrderStatus(order.ID, models.OrderStatusPending)
	assert.ErrorIs(t, err, ErrOrderFinalized)
}

func TestSessionSubtotalExcludesCanceled(t *testing.T) {
	db := setupTestDB(t)
	restaurant := seedRestaurant(t, db)
	user := seedUser(t, db, restaurant.ID)
	table := seedTable(t, db, restaurant.ID, "M1", models.TableStatusAvailable)
	session := openSessionFor(t, db, table.ID, user.ID)

	orders := NewOrderAggregator(db)

	_, err := orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 1, Quantity: 1, UnitPrice: 100.00},
	}, "")
	assert.NoError(t, err)

	canceled, err := orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 2, Quantity: 3, UnitPrice: 15.00},
	}, "")
	assert.NoError(t, err)

	_, err = orders.AddOrder(session.ID, []OrderItemInput{
		{ProductID: 3, Quantity: 2, UnitPrice: 25.00},
	}, "")
	assert.NoError(t, err)

	_, err = orders.UpdateOrderStatus(canceled.ID, models.OrderStatusCanceled)
	assert.NoError(t, err)

	subtotal, err := orders.SessionSubtotal(session.ID)
	assert.NoError(t, err)
	assert.Equal(t, 150.00, subtotal)
}
