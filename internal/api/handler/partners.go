package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListChatPartners returns the users the caller is eligible to chat with,
// each annotated with the latest shared appointment and an online flag. This
// is the bulk view of the same eligibility facts start_chat re-checks
// pairwise.
func (h *Handler) ListChatPartners(c *gin.Context) {
	user := currentUser(c)
	if user.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	partners, err := h.Storage.ListChatPartners(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat partners"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"partners": partners})
}
