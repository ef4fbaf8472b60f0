package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedagoia-backend/internal/domain/subscriptions"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestResolve(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		sub            *subscriptions.UserSubscription
		wantSubscribed bool
		wantDaysLeft   *int
	}{
		{
			name:           "no subscription row",
			sub:            nil,
			wantSubscribed: false,
		},
		{
			name: "active trial expiring in two days",
			sub: &subscriptions.UserSubscription{
				Type:      subscriptions.TypeTrial,
				Status:    subscriptions.StatusActive,
				ExpiresAt: timePtr(now.Add(48 * time.Hour)),
			},
			wantSubscribed: true,
			wantDaysLeft:   intPtr(2),
		},
		{
			name: "partial day rounds up",
			sub: &subscriptions.UserSubscription{
				Type:      subscriptions.TypeTrial,
				Status:    subscriptions.StatusActive,
				ExpiresAt: timePtr(now.Add(25 * time.Hour)),
			},
			wantSubscribed: true,
			wantDaysLeft:   intPtr(2),
		},
		{
			name: "active paid with future expiry",
			sub: &subscriptions.UserSubscription{
				Type:      subscriptions.TypePaid,
				Status:    subscriptions.StatusActive,
				ExpiresAt: timePtr(now.AddDate(0, 1, 0)),
			},
			wantSubscribed: true,
		},
		{
			name: "active status but expiry in the past",
			sub: &subscriptions.UserSubscription{
				Type:      subscriptions.TypePaid,
				Status:    subscriptions.StatusActive,
				ExpiresAt: timePtr(now.Add(-time.Hour)),
			},
			wantSubscribed: false,
			wantDaysLeft:   intPtr(0),
		},
		{
			name: "expiry exactly now is not entitled",
			sub: &subscriptions.UserSubscription{
				Type:      subscriptions.TypeTrial,
				Status:    subscriptions.StatusActive,
				ExpiresAt: timePtr(now),
			},
			wantSubscribed: false,
			wantDaysLeft:   intPtr(0),
		},
		{
			name: "beta with nil expiry is active indefinitely",
			sub: &subscriptions.UserSubscription{
				Type:   subscriptions.TypeBeta,
				Status: subscriptions.StatusActive,
			},
			wantSubscribed: true,
		},
		{
			name: "ambassador with nil expiry is active indefinitely",
			sub: &subscriptions.UserSubscription{
				Type:   subscriptions.TypeAmbassador,
				Status: subscriptions.StatusActive,
			},
			wantSubscribed: true,
		},
		{
			name: "expired status is never entitled",
			sub: &subscriptions.UserSubscription{
				Type:      subscriptions.TypePaid,
				Status:    subscriptions.StatusExpired,
				ExpiresAt: timePtr(now.AddDate(0, 1, 0)),
			},
			wantSubscribed: false,
		},
		{
			name: "canceled status is never entitled",
			sub: &subscriptions.UserSubscription{
				Type:   subscriptions.TypePaid,
				Status: subscriptions.StatusCanceled,
			},
			wantSubscribed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(now, tt.sub)

			assert.Equal(t, tt.wantSubscribed, got.Subscribed)

			if tt.wantDaysLeft != nil {
				require.NotNil(t, got.DaysLeft)
				assert.Equal(t, *tt.wantDaysLeft, *got.DaysLeft)
			}

			if tt.sub != nil {
				assert.Equal(t, tt.sub.Type, got.Type)
				assert.Equal(t, tt.sub.Status, got.Status)
			}
		})
	}
}

func TestResolveDaysLeftNilWithoutExpiry(t *testing.T) {
	got := Resolve(time.Now(), &subscriptions.UserSubscription{
		Type:   subscriptions.TypeBeta,
		Status: subscriptions.StatusActive,
	})

	assert.True(t, got.Subscribed)
	assert.Nil(t, got.ExpiresAt)
	assert.Nil(t, got.DaysLeft)
}

func intPtr(i int) *int { return &i }
