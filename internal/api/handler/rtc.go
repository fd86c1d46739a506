package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RTCToken issues a media-transport credential for the given channel. The
// coordinator only signs the token; joining the media session is between the
// client and the transport.
func (h *Handler) RTCToken(c *gin.Context) {
	identity := identityFrom(c)
	channel := c.Query("channel")
	if channel == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'channel' parameter"})
		return
	}

	token, err := h.RTC.BuildToken(identity, channel)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "channel": channel})
}
