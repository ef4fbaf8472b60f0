package stripewebhooks

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"pedagoia-backend/database"
	"pedagoia-backend/internal/app/services"
	"pedagoia-backend/internal/domain/billing"
	"pedagoia-backend/internal/domain/subscriptions"
	"pedagoia-backend/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/subscription"
)

func handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	// Fetch full session with expansions
	fullSession, err := checkoutsession.Get(session.ID, &stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Expand: []*string{
				stripe.String("subscription"),
				stripe.String("customer"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to fetch expanded checkout session: %w", err)
	}

	if fullSession.Subscription == nil || fullSession.Subscription.ID == "" {
		return errors.New("checkout session missing subscription")
	}
	subscriptionID := fullSession.Subscription.ID

	subData, err := subscription.Get(subscriptionID, nil)
	if err != nil || subData == nil {
		return fmt.Errorf("failed to fetch subscription: %w", err)
	}

	// Identify user: metadata.user_id preferred, else ClientReferenceID
	userID, err := userIDFromSubscriptionOrRef(subData, fullSession.ClientReferenceID)
	if err != nil {
		return err
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	variant := ""
	if subData.Metadata != nil {
		variant = subData.Metadata["plan_variant"]
	}
	var variantPtr *string
	if variant != "" {
		variantPtr = &variant
	}

	customerID := ""
	if fullSession.Customer != nil {
		customerID = fullSession.Customer.ID
	}
	var customerIDPtr *string
	if customerID != "" {
		customerIDPtr = &customerID
	}

	periodEnd := time.Unix(subData.CurrentPeriodEnd, 0)
	sub := subscriptions.UserSubscription{
		UserID:               user.ID,
		Type:                 subscriptions.TypePaid,
		Status:               subscriptions.StatusActive,
		ExpiresAt:            &periodEnd,
		PlanVariant:          variantPtr,
		StripeCustomerID:     customerIDPtr,
		StripeSubscriptionID: &subscriptionID,
	}
	if err := services.Subscriptions.Upsert(c.Request.Context(), &sub); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}

	if customerID != "" && (user.StripeCustomerID == nil || *user.StripeCustomerID == "") {
		_ = database.DB.Model(&users.User{}).
			Where("id = ?", user.ID).
			Update("stripe_customer_id", customerID).Error
	}

	recordPayment(fullSession, user.ID, subscriptionID, variantPtr)

	services.InvalidateEntitlement(user.ID)

	if err := services.Mailer.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		services.Log.WithError(err).WithField("email", user.Email).Error("failed to send welcome email")
	}

	return nil
}

func recordPayment(session *stripe.CheckoutSession, userID uint, subscriptionID string, variant *string) {
	payment := billing.Payment{
		UserID:               userID,
		StripeSessionID:      session.ID,
		StripeSubscriptionID: &subscriptionID,
		PlanVariant:          variant,
		AmountEUR:            float64(session.AmountTotal) / 100.0,
		Status:               "paid",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		services.Log.WithError(err).WithField("session_id", session.ID).Error("failed to record payment")
	}
}

func userIDFromSubscriptionOrRef(sub *stripe.Subscription, clientRef string) (uint, error) {
	userIDStr := ""
	if sub.Metadata != nil {
		userIDStr = sub.Metadata["user_id"]
	}
	if userIDStr == "" {
		userIDStr = clientRef
	}
	if userIDStr == "" {
		return 0, errors.New("missing user_id (metadata.user_id or client_reference_id)")
	}

	uid64, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user_id %q: %w", userIDStr, err)
	}
	return uint(uid64), nil
}
