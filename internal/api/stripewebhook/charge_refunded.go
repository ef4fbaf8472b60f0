package stripewebhooks

import (
	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/billing"
	"pedagoia-backend/internal/domain/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// A full refund revokes paid access immediately instead of waiting for the
// period end.
func handleChargeRefunded(c *gin.Context, charge *stripe.Charge) error {
	if charge.Customer == nil || charge.Customer.ID == "" {
		return nil
	}

	var record subscriptions.UserSubscription
	if err := database.DB.
		Where("stripe_customer_id = ? AND type = ?", charge.Customer.ID, subscriptions.TypePaid).
		First(&record).Error; err != nil {
		return nil
	}

	if charge.Refunded {
		if err := services.Subscriptions.MarkExpired(c.Request.Context(), record.ID); err != nil {
			return err
		}
		services.InvalidateEntitlement(record.UserID)
	}

	_ = database.DB.Model(&billing.Payment{}).
		Where("user_id = ? AND stripe_subscription_id = ?", record.UserID, record.StripeSubscriptionID).
		Update("status", "refunded").Error

	return nil
}
