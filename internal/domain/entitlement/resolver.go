package entitlement

import (
	"math"
	"time"

	"pedagoia-backend/internal/domain/subscriptions"
)

// Result is the resolved entitlement verdict for one user at one instant.
type Result struct {
	Subscribed bool       `json:"subscribed"`
	Type       string     `json:"type,omitempty"`
	Status     string     `json:"status,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	DaysLeft   *int       `json:"daysLeft,omitempty"`
}

// Resolve computes the entitlement verdict from a single subscription row.
// A user is entitled iff status is active and the expiry, when present, is in
// the future. Beta/ambassador/dev_mode grants with a nil expiry stay active
// indefinitely; once an expiry has passed there is no grace period for any
// type.
func Resolve(now time.Time, sub *subscriptions.UserSubscription) Result {
	if sub == nil {
		return Result{Subscribed: false}
	}

	active := sub.Status == subscriptions.StatusActive &&
		(sub.ExpiresAt == nil || sub.ExpiresAt.After(now))

	r := Result{
		Subscribed: active,
		Type:       sub.Type,
		Status:     sub.Status,
		ExpiresAt:  sub.ExpiresAt,
	}

	if sub.ExpiresAt != nil {
		d := int(math.Ceil(sub.ExpiresAt.Sub(now).Hours() / 24))
		if d < 0 {
			d = 0
		}
		r.DaysLeft = &d
	}

	return r
}
