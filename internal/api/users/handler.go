package users

import (
	"net/http"

	"pedagoia-backend/config"
	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	profile, err := services.Profiles.EnsureProfile(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	ent := services.Entitlement.Check(c.Request.Context(), user.ID, user.Email)

	resp := MeResponse{
		User: UserDTO{
			ID:         user.ID,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Role:       user.Role,
			IsVerified: user.IsVerified,
		},
		Profile: ProfileDTO{
			IsBeta:       profile.IsBeta,
			IsAmbassador: profile.IsAmbassador,
			IsAdmin:      profile.IsAdmin,
			RoleExpiry:   profile.RoleExpiry,
		},
		Subscription: BuildSubscriptionDTO(ent),
	}

	c.JSON(http.StatusOK, resp)
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	type Token struct {
		UserID int
	}
	var t Token
	if err := database.DB.Table("verification_tokens").Where("token = ?", token).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).Where("id = ?", t.UserID).Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	_ = database.DB.Exec("DELETE FROM verification_tokens WHERE token = ?", token)

	c.Redirect(http.StatusTemporaryRedirect, config.APP_URL+"/signin")
}
