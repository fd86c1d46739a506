package handler

import (
	"net/http"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/gin-gonic/gin"
)

// MessageHistory returns the conversation between the authenticated user and
// the identity given in the "with" query parameter, oldest first.
func (h *Handler) MessageHistory(c *gin.Context) {
	identity := identityFrom(c)
	other := c.Query("with")
	if other == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'with' parameter"})
		return
	}

	conversationID := models.ConversationIDFor(identity, other)
	history, err := h.Storage.GetChatHistory(conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation_id": conversationID, "messages": history})
}

// CallHistory returns every call the authenticated user took part in,
// newest first.
func (h *Handler) CallHistory(c *gin.Context) {
	identity := identityFrom(c)

	calls, err := h.Storage.GetCallHistory(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load call history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"calls": calls})
}
