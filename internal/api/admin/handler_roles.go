package admin

import (
	"net/http"
	"time"

	"pedagoia-backend/config"
	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/subscriptions"
	"pedagoia-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// POST /admin/users/:id/role
//
// Grants a beta, ambassador or admin role. The matching subscription row is
// written too so the access gate and the profile flags stay consistent.
func GrantRole(c *gin.Context) {
	var body struct {
		Role       string     `json:"role" binding:"required"`
		RoleExpiry *time.Time `json:"role_expiry"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	switch body.Role {
	case "beta", "ambassador", "admin":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be beta, ambassador or admin"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := services.Profiles.GrantRole(c.Request.Context(), user, body.Role, body.RoleExpiry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	subType := subscriptions.TypeBeta
	if body.Role == "ambassador" {
		subType = subscriptions.TypeAmbassador
	}
	if body.Role != "admin" {
		sub := subscriptions.UserSubscription{
			UserID:    user.ID,
			Type:      subType,
			Status:    subscriptions.StatusActive,
			ExpiresAt: body.RoleExpiry,
		}
		if err := services.Subscriptions.Upsert(c.Request.Context(), &sub); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store subscription"})
			return
		}
	}

	services.InvalidateEntitlement(user.ID)

	if body.Role == "ambassador" {
		if err := services.Mailer.SendAmbassadorWelcome(user.Email, user.FirstName); err != nil {
			services.Log.WithError(err).WithField("email", user.Email).Error("failed to send ambassador welcome")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role granted", "role": body.Role})
}

// POST /admin/users/:id/subscription
//
// Creates a paid subscription by hand, for support recovery when a Stripe
// webhook was missed. Requires the recovery token on top of the admin JWT.
func CreateManualSubscription(c *gin.Context) {
	if config.ADMIN_RECOVERY_TOKEN == "" ||
		c.GetHeader("X-Recovery-Token") != config.ADMIN_RECOVERY_TOKEN {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid recovery token"})
		return
	}

	var body struct {
		PlanVariant string `json:"plan_variant" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var expiry time.Time
	switch body.PlanVariant {
	case subscriptions.PlanMonthly:
		expiry = time.Now().AddDate(0, 1, 0)
	case subscriptions.PlanYearly:
		expiry = time.Now().AddDate(1, 0, 0)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan_variant must be monthly or yearly"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	variant := body.PlanVariant
	sub := subscriptions.UserSubscription{
		UserID:      user.ID,
		Type:        subscriptions.TypePaid,
		Status:      subscriptions.StatusActive,
		ExpiresAt:   &expiry,
		PlanVariant: &variant,
	}
	if err := services.Subscriptions.Upsert(c.Request.Context(), &sub); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store subscription"})
		return
	}

	services.InvalidateEntitlement(user.ID)

	services.Log.WithFields(map[string]interface{}{
		"user_id":      user.ID,
		"plan_variant": body.PlanVariant,
		"admin_id":     c.GetUint("user_id"),
	}).Info("manual subscription created")

	c.JSON(http.StatusOK, gin.H{"message": "Subscription created", "expires_at": expiry})
}

// POST /admin/expire-roles
//
// Runs the role expiry sweep on demand instead of waiting for the nightly
// schedule.
func ExpireRoles(c *gin.Context) {
	result, err := services.Sweeper.Run(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
