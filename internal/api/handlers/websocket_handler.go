package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/uppi/backend/internal/domain/user"
	"github.com/uppi/backend/pkg/logger"
	"github.com/uppi/backend/pkg/websocket"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket handles GET /v1/ws?token=. Browsers cannot set headers on
// WebSocket upgrades, so the token travels as a query parameter.
func (h *Handlers) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter required"})
		return
	}

	claims, err := h.Tokens.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Error("WebSocket upgrade failed", logger.Err(err))
		return
	}

	isDriver := claims.UserType == user.TypeDriver || claims.UserType == user.TypeBoth
	client := websocket.NewClient(h.Hub, conn, claims.UserID.String(), isDriver, h.Logger)
	h.Hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
