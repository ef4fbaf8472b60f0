package entitlement

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"pedagoia-backend/internal/domain/subscriptions"
)

// Store loads and updates the subscription rows the service decides on.
type Store interface {
	// LatestForUser returns the most recent subscription row for the user,
	// or (nil, nil) when none exists.
	LatestForUser(ctx context.Context, userID uint) (*subscriptions.UserSubscription, error)
	// MarkExpired flips the row's status to expired.
	MarkExpired(ctx context.Context, subID uint) error
}

// StripeGateway fetches the live Stripe subscription status for
// reconciliation of paid records.
type StripeGateway interface {
	// SubscriptionStatus returns the normalized live status for the given
	// Stripe subscription id.
	SubscriptionStatus(ctx context.Context, stripeSubID string) (string, error)
}

// Cache is an optional read-through cache for resolved verdicts. A nil
// Cache on the Service disables caching.
type Cache interface {
	Get(ctx context.Context, userID uint) (*Result, bool)
	Set(ctx context.Context, userID uint, r Result, ttl time.Duration)
}

// Service is the single entry point for entitlement decisions. Every gated
// call site depends on it rather than re-implementing checks, so the
// default-on-error policy lives in exactly one place: a failed subscription
// lookup yields NOT entitled (fail closed), while a failed Stripe
// reconciliation call trusts the local record (fail open, availability over
// strict consistency).
type Service struct {
	store  Store
	stripe StripeGateway
	cache  Cache
	log    *logrus.Logger

	// DevMode grants dev_mode access to everyone, bypassing lookups.
	DevMode bool

	// BetaEmails and BetaDomains grant beta access when no subscription
	// row exists for the user.
	BetaEmails  []string
	BetaDomains []string

	Now func() time.Time
}

const cacheTTL = 5 * time.Minute

func NewService(store Store, stripe StripeGateway, cache Cache, log *logrus.Logger) *Service {
	return &Service{
		store:  store,
		stripe: stripe,
		cache:  cache,
		log:    log,
		Now:    time.Now,
	}
}

// Check resolves the entitlement for a user. The email is only consulted for
// the beta allowlist fallback and may be empty. Check never returns an
// error: failures degrade to the documented defaults.
func (s *Service) Check(ctx context.Context, userID uint, email string) Result {
	if s.DevMode {
		return Result{Subscribed: true, Type: subscriptions.TypeDevMode, Status: subscriptions.StatusActive}
	}

	if s.cache != nil {
		if r, ok := s.cache.Get(ctx, userID); ok {
			return *r
		}
	}

	now := s.Now()

	sub, err := s.store.LatestForUser(ctx, userID)
	if err != nil {
		// Fail closed on gated content: a broken lookup never unlocks.
		s.log.WithError(err).WithField("user_id", userID).Error("subscription lookup failed")
		return Result{Subscribed: false}
	}

	if sub == nil {
		if r, ok := s.betaFallback(email); ok {
			return r
		}
		return Result{Subscribed: false}
	}

	r := Resolve(now, sub)

	if r.Subscribed && sub.Type == subscriptions.TypePaid &&
		sub.StripeSubscriptionID != nil && *sub.StripeSubscriptionID != "" {
		r = s.reconcile(ctx, sub, r)
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, r, cacheTTL)
	}
	return r
}

// reconcile cross-checks a locally-active paid record against the live
// Stripe subscription. A live status other than active/trialing demotes the
// local row to expired; an unreachable Stripe keeps the local verdict.
func (s *Service) reconcile(ctx context.Context, sub *subscriptions.UserSubscription, local Result) Result {
	status, err := s.stripe.SubscriptionStatus(ctx, *sub.StripeSubscriptionID)
	if err != nil {
		s.log.WithError(err).WithField("stripe_subscription_id", *sub.StripeSubscriptionID).
			Warn("stripe reconciliation failed, trusting local record")
		return local
	}

	if status == "active" || status == "trialing" {
		return local
	}

	s.log.WithFields(logrus.Fields{
		"user_id":       sub.UserID,
		"stripe_status": status,
	}).Info("demoting subscription after stripe mismatch")

	if err := s.store.MarkExpired(ctx, sub.ID); err != nil {
		s.log.WithError(err).WithField("subscription_id", sub.ID).Error("failed to mark subscription expired")
	}

	zero := 0
	return Result{
		Subscribed: false,
		Type:       sub.Type,
		Status:     subscriptions.StatusExpired,
		ExpiresAt:  sub.ExpiresAt,
		DaysLeft:   &zero,
	}
}

func (s *Service) betaFallback(email string) (Result, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Result{}, false
	}

	granted := false
	for _, e := range s.BetaEmails {
		if email == e {
			granted = true
			break
		}
	}
	if !granted {
		if at := strings.LastIndex(email, "@"); at >= 0 {
			domain := email[at+1:]
			for _, d := range s.BetaDomains {
				if domain == d {
					granted = true
					break
				}
			}
		}
	}
	if !granted {
		return Result{}, false
	}

	return Result{
		Subscribed: true,
		Type:       subscriptions.TypeBeta,
		Status:     subscriptions.StatusActive,
	}, true
}
