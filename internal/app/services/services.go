package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"pedagoia-backend/config"
	"pedagoia-backend/database"
	"pedagoia-backend/internal/domain/entitlement"
	"pedagoia-backend/internal/domain/subscriptions"
	"pedagoia-backend/internal/domain/users"
	"pedagoia-backend/internal/infra/cache"
	"pedagoia-backend/internal/infra/mailer"
	"pedagoia-backend/internal/infra/openai"
	"pedagoia-backend/internal/infra/stripe"
	"pedagoia-backend/internal/worker"
)

// Shared application services, wired once at startup after the database
// connection is up.
var (
	Log *logrus.Logger

	Entitlement   *entitlement.Service
	Subscriptions *subscriptions.GormStore
	Profiles      *users.ProfileStore
	Sweeper       *worker.ExpirySweeper
	OpenAI        *openai.Client
	Mailer        *mailer.Mailer
	EntCache      *cache.EntitlementCache
)

func Init(log *logrus.Logger) {
	Log = log

	Subscriptions = subscriptions.NewGormStore(database.DB)
	Profiles = users.NewProfileStore(database.DB)

	EntCache = cache.NewEntitlementCache(config.REDIS_URL)
	var entCache entitlement.Cache
	if EntCache != nil {
		entCache = EntCache
	}

	Entitlement = entitlement.NewService(Subscriptions, stripe.Gateway{}, entCache, log)
	Entitlement.DevMode = config.IsDevMode()
	Entitlement.BetaEmails = config.BETA_EMAILS
	Entitlement.BetaDomains = config.BETA_DOMAINS

	Sweeper = worker.NewExpirySweeper(Profiles, log)
	OpenAI = openai.New(config.OPENAI_API_KEY)
	Mailer = mailer.New()
}

// InvalidateEntitlement drops the cached verdict after a subscription
// write (webhook, admin grant), so the next gate check sees fresh state.
func InvalidateEntitlement(userID uint) {
	if EntCache != nil {
		EntCache.Invalidate(context.Background(), userID)
	}
}
