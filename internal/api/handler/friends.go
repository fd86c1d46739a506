package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"
	"github.com/gin-gonic/gin"
)

type addFriendRequest struct {
	Username string `json:"username" binding:"required"`
}

// AddFriend links the authenticated user with another account by username.
func (h *Handler) AddFriend(c *gin.Context) {
	identity := identityFrom(c)

	var req addFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	friend, err := h.Storage.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add friend"})
		return
	}
	if friend.ID == identity {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot befriend yourself"})
		return
	}

	if err := h.Storage.AddFriend(identity, friend.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add friend"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friend": friend})
}

type friendEntry struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Online      bool   `json:"online"`
}

// ListFriends returns the user's friends together with their presence.
func (h *Handler) ListFriends(c *gin.Context) {
	identity := identityFrom(c)

	friends, err := h.Storage.ListFriends(identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list friends"})
		return
	}

	ids := make([]string, len(friends))
	for i, f := range friends {
		ids[i] = f.ID
	}
	online, err := h.Storage.OnlineStatus(ids)
	if err != nil {
		// Presence is decoration; the friend list still goes out.
		log.Printf("Failed to load presence for %s: %v", identity, err)
		online = map[string]bool{}
	}

	entries := make([]friendEntry, len(friends))
	for i, f := range friends {
		entries[i] = friendEntry{
			ID:          f.ID,
			Username:    f.Username,
			DisplayName: f.DisplayName,
			Online:      online[f.ID],
		}
	}
	c.JSON(http.StatusOK, gin.H{"friends": entries})
}
