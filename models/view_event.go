package models

import (
	"time"
)

// ViewEvent is an append-only ledger row recording one view of a content
// item. ViewerID is nil for anonymous views.
type ViewEvent struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ContentItemID string    `json:"contentItemId" gorm:"type:uuid;not null;index"`
	CreatorID     string    `json:"creatorId" gorm:"type:uuid;not null;index"`
	ViewerID      *string   `json:"viewerId,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (ViewEvent) TableName() string {
	return "view_events"
}
