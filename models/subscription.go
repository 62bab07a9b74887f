package models

import (
	"time"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "ACTIVE"
	SubscriptionCanceled SubscriptionStatus = "CANCELED"
)

// Subscription is one subscription lifetime between a subscriber and a
// creator. The status moves ACTIVE -> CANCELED exactly once; resubscribing
// inserts a new row, a canceled row is never reopened.
type Subscription struct {
	ID                   string             `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID            string             `json:"creatorId" gorm:"type:uuid;not null;index"`
	SubscriberID         string             `json:"subscriberId" gorm:"type:uuid;not null;index"`
	Status               SubscriptionStatus `json:"status" gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	StripeSubscriptionID string             `json:"stripeSubscriptionId"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsActive is the single "active subscription" predicate shared by the access
// gate and the dashboard rollups, so a paywall decision and a subscriber
// count can never disagree on the same rows.
func (s Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}
