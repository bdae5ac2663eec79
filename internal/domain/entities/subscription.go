package entities

import "time"

// SubscriptionGracePeriod extends the paid period to cover billing delays.
const SubscriptionGracePeriod = 24 * time.Hour

// UserSubscription mirrors the billing provider's subscription record.
type UserSubscription struct {
	ID                     int64      `json:"id"`
	UserID                 string     `json:"userId"`
	StripeCustomerID       string     `json:"stripeCustomerId"`
	StripeSubscriptionID   string     `json:"stripeSubscriptionId"`
	StripePriceID          string     `json:"stripePriceId"`
	StripeCurrentPeriodEnd *time.Time `json:"stripeCurrentPeriodEnd"`
}

// IsActive reports whether the subscription grants unlimited hearts at now.
func (s *UserSubscription) IsActive(now time.Time) bool {
	if s == nil || s.StripePriceID == "" || s.StripeCurrentPeriodEnd == nil {
		return false
	}
	return s.StripeCurrentPeriodEnd.Add(SubscriptionGracePeriod).After(now)
}

// SubscriptionStatus is a subscription together with its derived state.
type SubscriptionStatus struct {
	UserSubscription
	IsActive bool `json:"isActive"`
}
