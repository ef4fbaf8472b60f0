package users

import (
	"pedagoia-backend/internal/domain/entitlement"
)

func BuildSubscriptionDTO(ent entitlement.Result) *SubscriptionDTO {
	if !ent.Subscribed {
		return nil
	}
	return &SubscriptionDTO{
		Type:      ent.Type,
		Status:    ent.Status,
		ExpiresAt: ent.ExpiresAt,
		DaysLeft:  ent.DaysLeft,
	}
}
