package handler

import (
	"net/http"

	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates the caller, upgrades the connection and hands
// it to the coordinator.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	user, err := h.userFromRequest(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	// Refresh name/role from the store; the token may be days old.
	if stored, err := h.Storage.GetUserByID(user.ID); err == nil && stored != nil {
		user = stored.Ref()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		User: user,
		Conn: conn,
		Hub:  h.Hub,
		Send: make(chan models.Event, 256),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
