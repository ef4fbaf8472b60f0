package stripe

import "strings"

// NormalizeStatus folds raw Stripe subscription statuses into the handful
// the entitlement logic distinguishes.
func NormalizeStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "":
		return "none"
	case "active":
		return "active"
	case "trialing":
		return "trialing"
	case "past_due", "unpaid":
		return "past_due"
	case "canceled", "incomplete_expired":
		return "canceled"
	default:
		return strings.TrimSpace(s)
	}
}
