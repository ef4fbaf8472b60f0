package entitlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedagoia-backend/internal/domain/subscriptions"
)

type fakeStore struct {
	sub        *subscriptions.UserSubscription
	err        error
	expiredIDs []uint
	markErr    error
}

func (f *fakeStore) LatestForUser(ctx context.Context, userID uint) (*subscriptions.UserSubscription, error) {
	return f.sub, f.err
}

func (f *fakeStore) MarkExpired(ctx context.Context, subID uint) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.expiredIDs = append(f.expiredIDs, subID)
	return nil
}

type fakeStripe struct {
	status string
	err    error
	calls  int
}

func (f *fakeStripe) SubscriptionStatus(ctx context.Context, stripeSubID string) (string, error) {
	f.calls++
	return f.status, f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(nopWriter{})
	return log
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func strPtr(s string) *string { return &s }

func newTestService(store Store, gateway StripeGateway) *Service {
	svc := NewService(store, gateway, nil, testLogger())
	svc.Now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestCheckFailsClosedOnStoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	svc := newTestService(store, &fakeStripe{})

	got := svc.Check(context.Background(), 42, "teacher@example.com")

	assert.False(t, got.Subscribed)
}

func TestCheckNoRowNoFallback(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeStripe{})

	got := svc.Check(context.Background(), 42, "teacher@example.com")

	assert.False(t, got.Subscribed)
}

func TestCheckBetaEmailFallback(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeStripe{})
	svc.BetaEmails = []string{"teacher@example.com"}

	got := svc.Check(context.Background(), 42, "Teacher@Example.com")

	require.True(t, got.Subscribed)
	assert.Equal(t, subscriptions.TypeBeta, got.Type)
}

func TestCheckBetaDomainFallback(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeStripe{})
	svc.BetaDomains = []string{"academie.fr"}

	got := svc.Check(context.Background(), 42, "prof@academie.fr")

	require.True(t, got.Subscribed)
	assert.Equal(t, subscriptions.TypeBeta, got.Type)

	got = svc.Check(context.Background(), 43, "prof@other.fr")
	assert.False(t, got.Subscribed)
}

func TestCheckDevModeBypassesStore(t *testing.T) {
	store := &fakeStore{err: errors.New("down")}
	svc := newTestService(store, &fakeStripe{})
	svc.DevMode = true

	got := svc.Check(context.Background(), 42, "")

	require.True(t, got.Subscribed)
	assert.Equal(t, subscriptions.TypeDevMode, got.Type)
}

func TestReconcileDemotesCanceledStripeSub(t *testing.T) {
	expiry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{sub: &subscriptions.UserSubscription{
		ID:                   7,
		UserID:               42,
		Type:                 subscriptions.TypePaid,
		Status:               subscriptions.StatusActive,
		ExpiresAt:            &expiry,
		StripeSubscriptionID: strPtr("sub_123"),
	}}
	gateway := &fakeStripe{status: "canceled"}
	svc := newTestService(store, gateway)

	got := svc.Check(context.Background(), 42, "")

	assert.False(t, got.Subscribed)
	assert.Equal(t, subscriptions.StatusExpired, got.Status)
	require.NotNil(t, got.DaysLeft)
	assert.Equal(t, 0, *got.DaysLeft)
	assert.Equal(t, []uint{7}, store.expiredIDs)
}

func TestReconcileKeepsActiveStripeSub(t *testing.T) {
	expiry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{sub: &subscriptions.UserSubscription{
		ID:                   7,
		UserID:               42,
		Type:                 subscriptions.TypePaid,
		Status:               subscriptions.StatusActive,
		ExpiresAt:            &expiry,
		StripeSubscriptionID: strPtr("sub_123"),
	}}
	gateway := &fakeStripe{status: "trialing"}
	svc := newTestService(store, gateway)

	got := svc.Check(context.Background(), 42, "")

	assert.True(t, got.Subscribed)
	assert.Empty(t, store.expiredIDs)
}

func TestReconcileFailsOpenOnStripeError(t *testing.T) {
	expiry := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{sub: &subscriptions.UserSubscription{
		ID:                   7,
		UserID:               42,
		Type:                 subscriptions.TypePaid,
		Status:               subscriptions.StatusActive,
		ExpiresAt:            &expiry,
		StripeSubscriptionID: strPtr("sub_123"),
	}}
	gateway := &fakeStripe{err: errors.New("stripe unreachable")}
	svc := newTestService(store, gateway)

	got := svc.Check(context.Background(), 42, "")

	assert.True(t, got.Subscribed, "local record is trusted when stripe is down")
	assert.Empty(t, store.expiredIDs)
}

func TestCheckSkipsReconcileForNonPaid(t *testing.T) {
	store := &fakeStore{sub: &subscriptions.UserSubscription{
		ID:     9,
		UserID: 42,
		Type:   subscriptions.TypeBeta,
		Status: subscriptions.StatusActive,
	}}
	gateway := &fakeStripe{status: "canceled"}
	svc := newTestService(store, gateway)

	got := svc.Check(context.Background(), 42, "")

	assert.True(t, got.Subscribed)
	assert.Zero(t, gateway.calls)
}

type fakeCache struct {
	entries map[uint]Result
	sets    int
}

func (f *fakeCache) Get(ctx context.Context, userID uint) (*Result, bool) {
	r, ok := f.entries[userID]
	if !ok {
		return nil, false
	}
	return &r, true
}

func (f *fakeCache) Set(ctx context.Context, userID uint, r Result, ttl time.Duration) {
	f.sets++
	f.entries[userID] = r
}

func TestCheckUsesCache(t *testing.T) {
	store := &fakeStore{sub: &subscriptions.UserSubscription{
		ID:     1,
		UserID: 42,
		Type:   subscriptions.TypeTrial,
		Status: subscriptions.StatusActive,
	}}
	cache := &fakeCache{entries: map[uint]Result{}}
	svc := NewService(store, &fakeStripe{}, cache, testLogger())
	svc.Now = time.Now

	first := svc.Check(context.Background(), 42, "")
	require.True(t, first.Subscribed)
	assert.Equal(t, 1, cache.sets)

	store.sub = nil
	second := svc.Check(context.Background(), 42, "")
	assert.True(t, second.Subscribed, "cached verdict served within the ttl")
	assert.Equal(t, 1, cache.sets)
}
