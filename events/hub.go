package events

import (
	"sync"

	"github.com/gorilla/websocket"

	"github.com/comandaflow/comanda-app/utils"
)

// Event types untuk dashboard realtime.
const (
	EventSessionOpen     = "session_open"
	EventSessionClose    = "session_close"
	EventSessionTransfer = "session_transfer"
	EventOrderCreate     = "order_create"
	EventOrderUpdate     = "order_update"
	EventBillCreate      = "bill_create"
	EventBillUpdate      = "bill_update"
	EventSplitUpdate     = "split_update"
	EventPaymentCreate   = "payment_create"
	EventTableUpdate     = "table_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung koneksi dashboard, dipisah per restoran supaya event
// satu tenant tidak bocor ke tenant lain.
type Hub struct {
	clients map[*websocket.Conn]uint // conn -> restaurantID
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient -> menambahkan koneksi untuk satu restoran.
func RegisterClient(conn *websocket.Conn, restaurantID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = restaurantID
}

// UnregisterClient -> melepaskan koneksi.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// Broadcast -> kirim message ke semua client restoran tersebut.
func Broadcast(restaurantID uint, msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn, restID := range hub.clients {
		if restID != restaurantID {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			if utils.ErrorLogger != nil {
				utils.ErrorLogger.Printf("websocket write failed, dropping client: %v", err)
			}
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
