package subscription

import (
	"net/http"

	"pedagoia-backend/internal/app/services"

	"github.com/gin-gonic/gin"
)

// GET /subscription/status
//
// Always answers 200: an unresolved or missing subscription is reported as
// subscribed=false, never as an error.
func Status(c *gin.Context) {
	userID := c.GetUint("user_id")
	email := c.GetString("email")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ent := services.Entitlement.Check(c.Request.Context(), userID, email)

	if !ent.Subscribed {
		c.JSON(http.StatusOK, gin.H{
			"subscribed":   false,
			"subscription": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subscribed": true,
		"subscription": gin.H{
			"type":      ent.Type,
			"status":    ent.Status,
			"expiresAt": ent.ExpiresAt,
			"daysLeft":  ent.DaysLeft,
		},
	})
}
