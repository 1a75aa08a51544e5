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

type SessionController struct {
	DB        *gorm.DB
	Sessions  *services.SessionManager
	Transfers *services.TransferCoordinator
}

func NewSessionController(db *gorm.DB, sessions *services.SessionManager, transfers *services.TransferCoordinator) *SessionController {
	return &SessionController{DB: db, Sessions: sessions, Transfers: transfers}
}

// OpenSession -> membuka sesi di meja available.
func (sc *SessionController) OpenSession(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	var req struct {
		CustomerName string `json:"customer_name"`
		PeopleCount  int    `json:"people_count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	table, err := findTableScoped(sc.DB, restaurantID, tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := sc.Sessions.OpenSession(services.OpenSessionInput{
		TableID:      table.ID,
		UserID:       currentUserID(c),
		CustomerName: req.CustomerName,
		PeopleCount:  req.PeopleCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventSessionOpen,
		Data:  session,
	})

	utils.InfoLogger.Printf("Session %d opened on table %d", session.ID, session.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Session opened", session)
}

// CloseSession -> menutup sesi; ditolak jika masih ada bill belum lunas.
func (sc *SessionController) CloseSession(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findSessionScoped(sc.DB, restaurantID, sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := sc.Sessions.CloseSession(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventSessionClose,
		Data:  session,
	})

	utils.InfoLogger.Printf("Session %d closed, table %d released", session.ID, session.TableID)
	utils.RespondJSON(c, http.StatusOK, "Session closed", session)
}

// TransferSession -> memindahkan sesi ke meja lain yang available.
func (sc *SessionController) TransferSession(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	var req struct {
		NewTableID uint `json:"new_table_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurantID := currentRestaurantID(c)
	if _, err := findSessionScoped(sc.DB, restaurantID, sessionID); err != nil {
		respondServiceError(c, err)
		return
	}
	if _, err := findTableScoped(sc.DB, restaurantID, req.NewTableID); err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := sc.Transfers.Transfer(sessionID, req.NewTableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.Broadcast(restaurantID, events.Message{
		Event: events.EventSessionTransfer,
		Data:  session,
	})

	utils.InfoLogger.Printf("Session %d transferred to table %d", session.ID, session.TableID)
	utils.RespondJSON(c, http.StatusOK, "Session transferred", session)
}

// GetAllSessions -> daftar sesi restoran, opsional filter status.
func (sc *SessionController) GetAllSessions(c *gin.Context) {
	query := sc.DB.Joins("JOIN tables ON tables.id = table_sessions.table_id").
		Where("tables.restaurant_id = ?", currentRestaurantID(c))
	if status := c.Query("status"); status != "" {
		query = query.Where("table_sessions.status = ?", status)
	}

	var sessions []models.TableSession
	if err := query.Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sessions", sessions)
}

// GetSessionByID -> detail sesi beserta order dan itemnya.
func (sc *SessionController) GetSessionByID(c *gin.Context) {
	sessionID, ok := paramUint(c, "session_id")
	if !ok {
		return
	}

	if _, err := findSessionScoped(sc.DB, currentRestaurantID(c), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}

	var session models.TableSession
	if err := sc.DB.Preload("Orders.OrderItems").First(&session, sessionID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Session detail", session)
}

// GetActiveSessionByTable -> sesi open di sebuah meja, jika ada.
func (sc *SessionController) GetActiveSessionByTable(c *gin.Context) {
	tableID, ok := paramUint(c, "table_id")
	if !ok {
		return
	}

	if _, err := findTableScoped(sc.DB, currentRestaurantID(c), tableID); err != nil {
		respondServiceError(c, err)
		return
	}

	session, err := sc.Sessions.FindActiveByTable(tableID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if session == nil {
		utils.RespondJSON(c, http.StatusOK, "No active session", nil)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active session", session)
}
