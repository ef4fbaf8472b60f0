package admin

import (
	"net/http"
	"time"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/billing"
	"pedagoia-backend/internal/domain/subscriptions"
	"pedagoia-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID               uint       `json:"id"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Role             string     `json:"role"`
	IsVerified       bool       `json:"is_verified"`
	SubType          *string    `json:"subscription_type,omitempty"`
	SubStatus        *string    `json:"subscription_status,omitempty"`
	SubExpiresAt     *time.Time `json:"subscription_expires_at,omitempty"`
	StripeCustomerID *string    `json:"stripe_customer_id,omitempty"`
}

type AdminPayment struct {
	ID          uint    `json:"id"`
	Email       string  `json:"email"`
	PlanVariant *string `json:"plan_variant,omitempty"`
	AmountEUR   float64 `json:"amount_eur"`
	Status      string  `json:"status"`
	InvoiceID   *string `json:"invoice_id,omitempty"`
	ReceiptURL  *string `json:"receipt_url,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers    int            `json:"total_users"`
	TotalRevenue  float64        `json:"total_revenue"`
	RecentRevenue float64        `json:"recent_revenue"`
	UsersPerType  map[string]int `json:"users_per_type"`
}

func ListAllUsers(c *gin.Context) {
	var allUsers []users.User
	err := database.DB.Find(&allUsers).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range allUsers {
		au := AdminUser{
			ID:               u.ID,
			FirstName:        u.FirstName,
			LastName:         u.LastName,
			Email:            u.Email,
			Role:             u.Role,
			IsVerified:       u.IsVerified,
			StripeCustomerID: u.StripeCustomerID,
		}

		sub, err := services.Subscriptions.LatestForUser(c.Request.Context(), u.ID)
		if err == nil && sub != nil {
			au.SubType = &sub.Type
			au.SubStatus = &sub.Status
			au.SubExpiresAt = sub.ExpiresAt
		}

		adminUsers = append(adminUsers, au)
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	err := database.DB.Preload("User").Order("created_at DESC").Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range payments {
		result = append(result, AdminPayment{
			ID:          p.ID,
			Email:       p.User.Email,
			PlanVariant: p.PlanVariant,
			AmountEUR:   p.AmountEUR,
			Status:      p.Status,
			InvoiceID:   p.InvoiceID,
			ReceiptURL:  p.ReceiptURL,
			CreatedAt:   p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalRevenue float64
	var recentRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&billing.Payment{}).Where("status = ?", "paid").Select("COALESCE(SUM(amount_eur), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", "paid", thirtyDaysAgo).
		Select("COALESCE(SUM(amount_eur), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type TypeCount struct {
		Type  *string
		Count int
	}
	var counts []TypeCount

	database.DB.
		Table("users").
		Select("user_subscriptions.type, COUNT(users.id) as count").
		Joins("LEFT JOIN user_subscriptions ON user_subscriptions.user_id = users.id AND user_subscriptions.status = 'active'").
		Group("user_subscriptions.type").
		Scan(&counts)

	stats.UsersPerType = map[string]int{}
	for _, tc := range counts {
		name := "none"
		if tc.Type != nil {
			name = *tc.Type
		}
		stats.UsersPerType[name] = tc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var profile users.Profile
	_ = database.DB.Where("user_id = ?", user.ID).First(&profile).Error

	var subs []subscriptions.UserSubscription
	_ = database.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&subs).Error

	var payments []billing.Payment
	if err := database.DB.Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":          user,
		"profile":       profile,
		"subscriptions": subs,
		"payments":      payments,
	})
}
