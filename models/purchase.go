package models

import (
	"time"
)

// Purchase is an append-only ledger row recording a one-off unlock of a
// single paid item. Rows are never updated or deleted.
type Purchase struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentItemID    string    `json:"contentItemId" gorm:"type:uuid;not null;index"`
	BuyerID          string    `json:"buyerId" gorm:"type:uuid;not null;index"`
	CreatorID        string    `json:"creatorId" gorm:"type:uuid;not null;index"`
	AmountMinorUnits int64     `json:"amountMinorUnits" gorm:"not null"`
	StripePaymentID  string    `json:"stripePaymentId"`
	CreatedAt        time.Time `json:"createdAt"`
}

func (Purchase) TableName() string {
	return "purchases"
}
