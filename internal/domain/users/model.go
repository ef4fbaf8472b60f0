package users

import (
	"time"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	FirstName    string
	LastName     string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile carries the UI-facing role flags. It exists alongside
// UserSubscription as a second role representation; the admin grant path
// writes both so the two stay consistent, but nothing enforces it
// bidirectionally. Created lazily on first login when absent.
type Profile struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;uniqueIndex:idx_user_profiles_user_id"`
	UserEmail    string `gorm:"not null;index"`
	IsBeta       bool   `gorm:"not null;default:false"`
	IsAmbassador bool   `gorm:"not null;default:false"`
	IsAdmin      bool   `gorm:"not null;default:false"`

	// Single expiry shared by all three flags, so only one grant can
	// practically be time-boxed at a time.
	RoleExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Profile) TableName() string { return "user_profiles" }

// HasAnyRole reports whether at least one role flag is set.
func (p Profile) HasAnyRole() bool {
	return p.IsBeta || p.IsAmbassador || p.IsAdmin
}
