package users

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ProfileStore persists user profiles in Postgres.
type ProfileStore struct {
	DB *gorm.DB
}

func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{DB: db}
}

// EnsureProfile returns the user's profile, creating it on first login.
func (s *ProfileStore) EnsureProfile(ctx context.Context, user User) (Profile, error) {
	var p Profile
	err := s.DB.WithContext(ctx).Where("user_id = ?", user.ID).First(&p).Error
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Profile{}, err
	}

	p = Profile{UserID: user.ID, UserEmail: user.Email}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ListWithRoleExpiry returns profiles with any role flag set and a non-null
// role_expiry, the sweep's candidate set.
func (s *ProfileStore) ListWithRoleExpiry(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	err := s.DB.WithContext(ctx).
		Where("(is_beta = ? OR is_ambassador = ? OR is_admin = ?) AND role_expiry IS NOT NULL",
			true, true, true).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// ClearRoles unsets all three role flags and nulls the shared expiry.
func (s *ProfileStore) ClearRoles(ctx context.Context, profileID uint) error {
	return s.DB.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", profileID).
		Updates(map[string]interface{}{
			"is_beta":       false,
			"is_ambassador": false,
			"is_admin":      false,
			"role_expiry":   nil,
			"updated_at":    time.Now(),
		}).Error
}

// GrantRole sets one role flag (beta, ambassador or admin) with an optional
// expiry, writing the email denormalization along the way.
func (s *ProfileStore) GrantRole(ctx context.Context, user User, role string, expiry *time.Time) error {
	p, err := s.EnsureProfile(ctx, user)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"user_email":  user.Email,
		"role_expiry": expiry,
		"updated_at":  time.Now(),
	}
	switch role {
	case "beta":
		updates["is_beta"] = true
	case "ambassador":
		updates["is_ambassador"] = true
	case "admin":
		updates["is_admin"] = true
	default:
		return errors.New("unknown role: " + role)
	}

	return s.DB.WithContext(ctx).Model(&Profile{}).
		Where("id = ?", p.ID).
		Updates(updates).Error
}
