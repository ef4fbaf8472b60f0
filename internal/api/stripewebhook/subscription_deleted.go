package stripewebhooks

import (
	"time"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return nil
	}

	var record subscriptions.UserSubscription
	userID := userIDFromMetadata(sub.Metadata)
	if userID != 0 {
		_ = database.DB.
			Where("user_id = ? AND type = ?", userID, subscriptions.TypePaid).
			First(&record).Error
	}
	if record.ID == 0 {
		_ = database.DB.
			Where("stripe_subscription_id = ?", sub.ID).
			First(&record).Error
	}
	if record.ID == 0 {
		return nil
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	err := database.DB.Model(&subscriptions.UserSubscription{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"status":     subscriptions.StatusCanceled,
			"expires_at": periodEnd,
		}).Error
	if err != nil {
		return err
	}

	services.InvalidateEntitlement(record.UserID)
	return nil
}
