package subscriptions

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// GormStore persists subscription rows in Postgres.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// LatestForUser returns the most recent subscription row for the user
// (latest-wins), or nil when the user has none.
func (s *GormStore) LatestForUser(ctx context.Context, userID uint) (*UserSubscription, error) {
	var sub UserSubscription
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *GormStore) MarkExpired(ctx context.Context, subID uint) error {
	return s.DB.WithContext(ctx).Model(&UserSubscription{}).
		Where("id = ?", subID).
		Updates(map[string]interface{}{
			"status":     StatusExpired,
			"updated_at": time.Now(),
		}).Error
}

// Upsert updates the user's latest row of the given type or creates one.
// Used by the webhook and admin grant paths.
func (s *GormStore) Upsert(ctx context.Context, sub *UserSubscription) error {
	var existing UserSubscription
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND type = ?", sub.UserID, sub.Type).
		Order("created_at DESC").
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.WithContext(ctx).Create(sub).Error
	}
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Model(&UserSubscription{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"status":                 sub.Status,
			"expires_at":             sub.ExpiresAt,
			"plan_variant":           sub.PlanVariant,
			"stripe_customer_id":     sub.StripeCustomerID,
			"stripe_subscription_id": sub.StripeSubscriptionID,
			"updated_at":             time.Now(),
		}).Error
}
