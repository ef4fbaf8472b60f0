package users

import "time"

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Profile      ProfileDTO       `json:"profile"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

/* ---------- PROFILE ---------- */

type ProfileDTO struct {
	IsBeta       bool       `json:"is_beta"`
	IsAmbassador bool       `json:"is_ambassador"`
	IsAdmin      bool       `json:"is_admin"`
	RoleExpiry   *time.Time `json:"role_expiry"`
}

/* ---------- SUBSCRIPTION ---------- */

type SubscriptionDTO struct {
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt"`
	DaysLeft  *int       `json:"daysLeft"`
}
