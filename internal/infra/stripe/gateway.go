package stripe

import (
	"context"
	"time"

	stripego "github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/subscription"
)

// Gateway talks to the live Stripe API for reconciliation checks.
type Gateway struct{}

// SubscriptionStatus fetches the live subscription and returns its
// normalized status. A single attempt is made; callers decide what a
// failure means.
func (Gateway) SubscriptionStatus(ctx context.Context, stripeSubID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	sub, err := subscription.Get(stripeSubID, &stripego.SubscriptionParams{
		Params: stripego.Params{Context: ctx},
	})
	if err != nil {
		return "", err
	}
	return NormalizeStatus(string(sub.Status)), nil
}
