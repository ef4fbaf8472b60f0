package billing

import (
	"net/http"

	"pedagoia-backend/config"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/price"
)

type StripePlan struct {
	PriceID    string  `json:"price_id"`
	Name       string  `json:"name"`
	Currency   string  `json:"currency"`
	UnitAmount float64 `json:"unit_amount"` // in major units (EUR)
	Interval   string  `json:"interval"`    // month/year
}

// ListPlans returns the two offered prices with live amounts from Stripe.
func ListPlans(c *gin.Context) {
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	plans := []StripePlan{}
	for _, priceID := range []string{config.STRIPE_PRICE_MONTHLY, config.STRIPE_PRICE_YEARLY} {
		if priceID == "" {
			continue
		}

		p, err := price.Get(priceID, &stripe.PriceParams{
			Params: stripe.Params{Expand: []*string{stripe.String("product")}},
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch Stripe prices"})
			return
		}
		if !p.Active || p.Recurring == nil {
			continue
		}

		name := ""
		if p.Product != nil {
			name = p.Product.Name
		}

		plans = append(plans, StripePlan{
			PriceID:    p.ID,
			Name:       name,
			Currency:   string(p.Currency),
			UnitAmount: float64(p.UnitAmount) / 100.0,
			Interval:   string(p.Recurring.Interval),
		})
	}

	c.JSON(http.StatusOK, plans)
}
