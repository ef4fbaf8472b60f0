package subscriptions

import "time"

// Subscription type constants (single source of truth)
const (
	TypePaid       = "paid"
	TypeTrial      = "trial"
	TypeTrialLong  = "trial_long"
	TypeBeta       = "beta"
	TypeAmbassador = "ambassador"
	TypeDevMode    = "dev_mode"
)

const (
	StatusActive   = "active"
	StatusExpired  = "expired"
	StatusCanceled = "canceled"
)

const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// UserSubscription is the persisted entitlement record. A user may have
// several rows historically; the live one is the most recent by created_at.
// Rows are never hard-deleted, only soft-expired via a status flip.
type UserSubscription struct {
	ID     uint   `gorm:"primaryKey"`
	UserID uint   `gorm:"not null;index:idx_user_subscriptions_user_id"`
	Type   string `gorm:"type:varchar(20);not null"`
	Status string `gorm:"type:varchar(20);not null;default:'active'"`

	// Nil for non-expiring grants (beta/ambassador/dev_mode).
	ExpiresAt *time.Time

	PlanVariant          *string `gorm:"type:varchar(20)"` // monthly | yearly, paid only
	StripeCustomerID     *string
	StripeSubscriptionID *string `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsNonExpiring reports whether the type is granted without an expiry by
// default.
func IsNonExpiring(subType string) bool {
	switch subType {
	case TypeBeta, TypeAmbassador, TypeDevMode:
		return true
	}
	return false
}
