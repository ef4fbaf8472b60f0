package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedagoia-backend/internal/domain/users"
)

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles []users.Profile
	listErr  error
	failIDs  map[uint]error
	cleared  []uint
}

func (f *fakeProfileStore) ListWithRoleExpiry(ctx context.Context) ([]users.Profile, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]users.Profile, len(f.profiles))
	copy(out, f.profiles)
	return out, nil
}

func (f *fakeProfileStore) ClearRoles(ctx context.Context, profileID uint) error {
	if err, ok := f.failIDs[profileID]; ok {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, profileID)

	for i := range f.profiles {
		if f.profiles[i].ID == profileID {
			f.profiles[i].IsBeta = false
			f.profiles[i].IsAmbassador = false
			f.profiles[i].IsAdmin = false
			f.profiles[i].RoleExpiry = nil
		}
	}
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(discard{})
	return log
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newSweeper(store ProfileStore, now time.Time) *ExpirySweeper {
	s := NewExpirySweeper(store, quietLogger())
	s.Now = func() time.Time { return now }
	return s
}

func timePtr(t time.Time) *time.Time { return &t }

func TestRunClearsExpiredRoles(t *testing.T) {
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	store := &fakeProfileStore{profiles: []users.Profile{
		{ID: 1, UserEmail: "expired@example.com", IsBeta: true, RoleExpiry: timePtr(now.Add(-time.Hour))},
		{ID: 2, UserEmail: "future@example.com", IsAmbassador: true, RoleExpiry: timePtr(now.Add(24 * time.Hour))},
	}}

	result, err := newSweeper(store, now).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Successfully unset roles for 1 users", result.Message)
	assert.Equal(t, []string{"expired@example.com"}, result.UpdatedUsers)
	assert.Empty(t, result.Failures)
	assert.Equal(t, []uint{1}, store.cleared)
}

func TestRunNothingExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	store := &fakeProfileStore{profiles: []users.Profile{
		{ID: 1, UserEmail: "future@example.com", IsBeta: true, RoleExpiry: timePtr(now.Add(time.Hour))},
	}}

	result, err := newSweeper(store, now).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "No roles have expired", result.Message)
	assert.Empty(t, result.UpdatedUsers)
	assert.Empty(t, store.cleared)
}

func TestRunIsIdempotent(t *testing.T) {
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	store := &fakeProfileStore{profiles: []users.Profile{
		{ID: 1, UserEmail: "expired@example.com", IsAdmin: true, RoleExpiry: timePtr(now.Add(-time.Minute))},
	}}
	sweeper := newSweeper(store, now)

	first, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, first.UpdatedUsers, 1)

	// The first pass nulled the expiry, so the profile no longer matches.
	store.profiles = nil
	second, err := sweeper.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No roles have expired", second.Message)
}

func TestRunCollectsPartialFailures(t *testing.T) {
	now := time.Date(2025, 3, 10, 3, 0, 0, 0, time.UTC)
	store := &fakeProfileStore{
		profiles: []users.Profile{
			{ID: 1, UserEmail: "ok@example.com", IsBeta: true, RoleExpiry: timePtr(now.Add(-time.Hour))},
			{ID: 2, UserEmail: "broken@example.com", IsBeta: true, RoleExpiry: timePtr(now.Add(-time.Hour))},
		},
		failIDs: map[uint]error{2: errors.New("deadlock detected")},
	}

	result, err := newSweeper(store, now).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"ok@example.com"}, result.UpdatedUsers)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "broken@example.com", result.Failures[0].UserEmail)
	assert.Equal(t, "deadlock detected", result.Failures[0].Error)
}

func TestRunListErrorAborts(t *testing.T) {
	store := &fakeProfileStore{listErr: errors.New("connection refused")}

	_, err := newSweeper(store, time.Now()).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
