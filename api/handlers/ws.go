package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"thunderbuddy/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	manager *services.WSConnManager
}

func NewWSHandler(manager *services.WSConnManager) *WSHandler {
	return &WSHandler{manager: manager}
}

// Stream - GET /api/ws, канал push-уведомлений
func (h *WSHandler) Stream(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	// Приветствие до регистрации: после Add писать в соединение
	// напрямую нельзя, записи идут через менеджер
	_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"connected"}`))

	h.manager.Add(userID, conn)
	defer h.manager.Remove(userID, conn)

	// Клиент ничего не шлет, читаем только ради close/ping
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
