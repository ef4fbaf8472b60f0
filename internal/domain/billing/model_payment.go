package billing

import (
	"time"

	"pedagoia-backend/internal/domain/users"
)

// Payment records one Stripe charge as seen by the webhook, for the
// payment-history and admin views.
type Payment struct {
	ID                   uint `gorm:"primaryKey"`
	UserID               uint
	User                 users.User
	StripeSessionID      string `gorm:"uniqueIndex"`
	StripeSubscriptionID *string
	PlanVariant          *string `gorm:"type:varchar(20)"` // monthly | yearly
	AmountEUR            float64
	Status               string
	InvoiceID            *string
	ReceiptURL           *string
	CreatedAt            time.Time
}
