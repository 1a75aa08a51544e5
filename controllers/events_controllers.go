package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/comandaflow/comanda-app/events"
	"github.com/comandaflow/comanda-app/utils"
)

var dashboardUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type EventsController struct{}

func NewEventsController() *EventsController {
	return &EventsController{}
}

// DashboardSocket -> upgrade ke websocket dan daftarkan koneksi ke hub
// restoran. Client hanya menerima broadcast; pesan masuk diabaikan.
func (ec *EventsController) DashboardSocket(c *gin.Context) {
	restaurantID := currentRestaurantID(c)

	conn, err := dashboardUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	events.RegisterClient(conn, restaurantID)
	utils.InfoLogger.Printf("Dashboard client connected (restaurant=%d)", restaurantID)

	go func() {
		defer events.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
