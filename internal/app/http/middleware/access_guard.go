package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"pedagoia-backend/internal/domain/entitlement"
)

// GuardConfig drives the per-route access decision.
type GuardConfig struct {
	RequireAuth         bool
	RequireSubscription bool
	LoginPath           string
	PricingPath         string
	ExcludedPaths       []string
}

// Decision is the terminal state of one access evaluation.
type Decision int

const (
	DecisionAuthorized Decision = iota
	DecisionRedirectLogin
	DecisionRedirectSubscription
)

// EntitlementChecker is the one interface every gated route depends on.
// Implementations must embed the default-on-error policy (fail closed).
type EntitlementChecker interface {
	Check(ctx context.Context, userID uint, email string) entitlement.Result
}

// Decide applies the guards in order: excluded-path bypass, then auth, then
// subscription. It is only called once both the auth resolution and the
// entitlement resolution have completed, so a still-loading check can never
// produce a premature redirect.
func Decide(cfg GuardConfig, path string, authenticated bool, ent entitlement.Result) Decision {
	for _, p := range cfg.ExcludedPaths {
		if p == path || (strings.HasSuffix(p, "/*") && strings.HasPrefix(path, strings.TrimSuffix(p, "*"))) {
			return DecisionAuthorized
		}
	}

	if cfg.RequireAuth && !authenticated {
		return DecisionRedirectLogin
	}

	if cfg.RequireSubscription && !ent.Subscribed {
		return DecisionRedirectSubscription
	}

	return DecisionAuthorized
}

// AccessGuard gates a route group on authentication and entitlement.
// Unauthenticated users are redirected to the login path with a returnUrl;
// unentitled users to the pricing path. Guard failures never surface as
// errors to the client, only as redirects.
func AccessGuard(cfg GuardConfig, checker EntitlementChecker) gin.HandlerFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.PricingPath == "" {
		cfg.PricingPath = "/pricing"
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		// Resolve both inputs before deciding anything.
		userID := c.GetUint("user_id")
		email := c.GetString("email")
		authenticated := userID != 0

		var ent entitlement.Result
		if cfg.RequireSubscription && authenticated {
			ent = checker.Check(c.Request.Context(), userID, email)
		}

		switch Decide(cfg, path, authenticated, ent) {
		case DecisionRedirectLogin:
			c.Redirect(http.StatusFound, cfg.LoginPath+"?returnUrl="+url.QueryEscape(path))
			c.Abort()
		case DecisionRedirectSubscription:
			c.Redirect(http.StatusFound, cfg.PricingPath+"?reason=subscription_required")
			c.Abort()
		default:
			c.Next()
		}
	}
}
