package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"pedagoia-backend/internal/domain/entitlement"
)

type stubChecker struct {
	result entitlement.Result
}

func (s stubChecker) Check(ctx context.Context, userID uint, email string) entitlement.Result {
	return s.result
}

func guardedRouter(cfg GuardConfig, checker EntitlementChecker, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
			c.Set("email", "teacher@example.com")
		}
	})
	r.Use(AccessGuard(cfg, checker))
	r.GET("/*any", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r
}

func defaultGuard() GuardConfig {
	return GuardConfig{
		RequireAuth:         true,
		RequireSubscription: true,
		LoginPath:           "/login",
		PricingPath:         "/pricing",
		ExcludedPaths:       []string{"/pricing"},
	}
}

func TestGuardRedirectsUnauthenticatedToLogin(t *testing.T) {
	r := guardedRouter(defaultGuard(), stubChecker{}, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercise", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?returnUrl=%2Fexercise", w.Header().Get("Location"))
}

func TestGuardRedirectsUnsubscribedToPricing(t *testing.T) {
	checker := stubChecker{result: entitlement.Result{Subscribed: false}}
	r := guardedRouter(defaultGuard(), checker, 42)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercise", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/pricing?reason=subscription_required", w.Header().Get("Location"))
}

func TestGuardAuthorizesSubscribedUser(t *testing.T) {
	checker := stubChecker{result: entitlement.Result{Subscribed: true, Type: "trial"}}
	r := guardedRouter(defaultGuard(), checker, 42)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/exercise", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuardExcludedPathBypassesChecks(t *testing.T) {
	// Even unauthenticated and unsubscribed, the pricing page stays open:
	// redirecting there would loop.
	r := guardedRouter(defaultGuard(), stubChecker{}, 0)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pricing", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDecideOrder(t *testing.T) {
	cfg := GuardConfig{
		RequireAuth:         true,
		RequireSubscription: true,
		ExcludedPaths:       []string{"/pricing", "/public/*"},
	}

	tests := []struct {
		name          string
		path          string
		authenticated bool
		ent           entitlement.Result
		want          Decision
	}{
		{"excluded path wins over missing auth", "/pricing", false, entitlement.Result{}, DecisionAuthorized},
		{"wildcard excluded path", "/public/assets/logo.png", false, entitlement.Result{}, DecisionAuthorized},
		{"auth checked before subscription", "/exercise", false, entitlement.Result{Subscribed: true}, DecisionRedirectLogin},
		{"subscription checked after auth", "/exercise", true, entitlement.Result{}, DecisionRedirectSubscription},
		{"all green", "/exercise", true, entitlement.Result{Subscribed: true}, DecisionAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(cfg, tt.path, tt.authenticated, tt.ent)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecideAuthOnlyGroup(t *testing.T) {
	cfg := GuardConfig{RequireAuth: true}

	assert.Equal(t, DecisionRedirectLogin, Decide(cfg, "/me", false, entitlement.Result{}))
	assert.Equal(t, DecisionAuthorized, Decide(cfg, "/me", true, entitlement.Result{}))
}
