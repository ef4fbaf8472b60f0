package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"pedagoia-backend/internal/domain/users"
)

// ProfileStore is the slice of persistence the sweep needs.
type ProfileStore interface {
	// ListWithRoleExpiry returns profiles with at least one role flag set
	// and a non-null role_expiry.
	ListWithRoleExpiry(ctx context.Context) ([]users.Profile, error)
	// ClearRoles unsets all three role flags and nulls the expiry.
	ClearRoles(ctx context.Context, profileID uint) error
}

// SweepFailure reports one profile the sweep could not update.
type SweepFailure struct {
	UserEmail string `json:"user_email"`
	Error     string `json:"error"`
}

// SweepResult is the sweep entrypoint's response shape.
type SweepResult struct {
	Message      string         `json:"message"`
	UpdatedUsers []string       `json:"updatedUsers"`
	Failures     []SweepFailure `json:"failures,omitempty"`
}

// ExpirySweeper batch-corrects stale role flags on user profiles whose
// role_expiry has passed. Updates are per-user and commutative, so they run
// concurrently with no ordering guarantees; a failed row is reported but
// never aborts the batch, and a rerun simply sweeps the same stale rows
// again (idempotent, at-least-once).
type ExpirySweeper struct {
	store ProfileStore
	log   *logrus.Logger

	Now func() time.Time
}

func NewExpirySweeper(store ProfileStore, log *logrus.Logger) *ExpirySweeper {
	return &ExpirySweeper{store: store, log: log, Now: time.Now}
}

// Run performs one sweep. It only returns an error when the initial profile
// listing fails; per-row update errors are collected in the result.
func (s *ExpirySweeper) Run(ctx context.Context) (SweepResult, error) {
	profiles, err := s.store.ListWithRoleExpiry(ctx)
	if err != nil {
		return SweepResult{}, fmt.Errorf("fetching profiles with role expiry: %w", err)
	}

	now := s.Now()

	var expired []users.Profile
	for _, p := range profiles {
		if p.RoleExpiry != nil && p.RoleExpiry.Before(now) {
			expired = append(expired, p)
		}
	}

	if len(expired) == 0 {
		return SweepResult{Message: "No roles have expired"}, nil
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		updated  []string
		failures []SweepFailure
	)

	for _, p := range expired {
		wg.Add(1)
		go func(p users.Profile) {
			defer wg.Done()
			if err := s.store.ClearRoles(ctx, p.ID); err != nil {
				mu.Lock()
				failures = append(failures, SweepFailure{UserEmail: p.UserEmail, Error: err.Error()})
				mu.Unlock()
				return
			}
			mu.Lock()
			updated = append(updated, p.UserEmail)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	result := SweepResult{
		Message:      fmt.Sprintf("Successfully unset roles for %d users", len(updated)),
		UpdatedUsers: updated,
		Failures:     failures,
	}

	s.log.WithFields(logrus.Fields{
		"updated": len(updated),
		"failed":  len(failures),
	}).Info("role expiry sweep finished")

	return result, nil
}

// Schedule registers the sweep on the cron runner with the given spec and
// starts it. The returned cron can be stopped on shutdown.
func (s *ExpirySweeper) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := s.Run(context.Background()); err != nil {
			s.log.WithError(err).Error("scheduled role expiry sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
