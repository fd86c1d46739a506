package handler

import (
	"net/http"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/chathub"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/config"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the HTTP connection and hands it to the hub. The
// token establishes the connection's identity; the in-band register event
// then binds the connection to its personal room.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}
	identity, err := h.validateAndGetIdentity(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		Identity: identity,
		Conn:     conn,
		Hub:      h.Hub,
		Send:     make(chan models.Event, config.ClientSendBuffer),
	}

	h.Hub.RegisterCh <- client
	client.Run()
}
