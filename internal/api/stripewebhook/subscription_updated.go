package stripewebhooks

import (
	"fmt"
	"strconv"
	"time"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/subscriptions"
	infrastripe "pedagoia-backend/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

func handleSubscriptionUpdated(c *gin.Context, sub *stripe.Subscription) error {
	if sub.ID == "" {
		return fmt.Errorf("subscription missing id")
	}

	var record subscriptions.UserSubscription
	userID := userIDFromMetadata(sub.Metadata)
	if userID != 0 {
		if err := database.DB.
			Where("user_id = ? AND type = ?", userID, subscriptions.TypePaid).
			First(&record).Error; err != nil {
			// acknowledge to avoid Stripe retries if the row never existed
			return nil
		}
	} else {
		if err := database.DB.
			Where("stripe_subscription_id = ?", sub.ID).
			First(&record).Error; err != nil {
			return nil
		}
	}

	periodEnd := time.Unix(sub.CurrentPeriodEnd, 0)
	status := infrastripe.NormalizeStatus(string(sub.Status))

	localStatus := subscriptions.StatusActive
	switch status {
	case "active", "trialing":
		localStatus = subscriptions.StatusActive
	case "canceled":
		localStatus = subscriptions.StatusCanceled
	default:
		localStatus = subscriptions.StatusExpired
	}

	err := database.DB.Model(&subscriptions.UserSubscription{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"status":                 localStatus,
			"expires_at":             periodEnd,
			"stripe_subscription_id": sub.ID,
		}).Error
	if err != nil {
		return err
	}

	services.InvalidateEntitlement(record.UserID)
	return nil
}

func userIDFromMetadata(md map[string]string) uint {
	if md == nil {
		return 0
	}
	s := md["user_id"]
	if s == "" {
		return 0
	}
	uid, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(uid)
}
