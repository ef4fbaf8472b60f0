package routes

import (
	adminapi "pedagoia-backend/internal/api/admin"
	authapi "pedagoia-backend/internal/api/auth"
	"pedagoia-backend/internal/api/billing"
	contentapi "pedagoia-backend/internal/api/content"
	"pedagoia-backend/internal/api/generate"
	stripewebhooks "pedagoia-backend/internal/api/stripewebhook"
	subscriptionapi "pedagoia-backend/internal/api/subscription"
	"pedagoia-backend/internal/api/users"
	"pedagoia-backend/internal/app/http/middleware"
	"pedagoia-backend/internal/app/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/plans", billing.ListPlans)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.GET("/subscription/status", subscriptionapi.Status)
	auth.GET("/payments", billing.GetPaymentHistory)
	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)
	auth.POST("/change-password", authapi.ChangePassword)

	// Subscribed users: the generation tools sit behind the access gate.
	subscribed := auth.Group("/")
	subscribed.Use(middleware.AccessGuard(middleware.GuardConfig{
		RequireAuth:         true,
		RequireSubscription: true,
		LoginPath:           "/login",
		PricingPath:         "/pricing",
		ExcludedPaths:       []string{"/pricing"},
	}, services.Entitlement))

	subscribed.POST("/generate/lesson-plan", generate.LessonPlan)
	subscribed.POST("/generate/exercises", generate.Exercises)
	subscribed.POST("/generate/correspondence", generate.Correspondence)
	subscribed.POST("/generate/lyrics", generate.Lyrics)
	subscribed.POST("/generate/image", generate.Image)

	subscribed.GET("/content", contentapi.ListSavedContent)
	subscribed.GET("/content/images", contentapi.ListImages)
	subscribed.GET("/content/:id", contentapi.GetSavedContent)
	subscribed.DELETE("/content/:id", contentapi.DeleteSavedContent)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/users/:id/role", adminapi.GrantRole)
	admin.POST("/users/:id/subscription", adminapi.CreateManualSubscription)
	admin.POST("/expire-roles", adminapi.ExpireRoles)
}
