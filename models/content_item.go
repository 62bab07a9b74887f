package models

import (
	"time"
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type Visibility string

const (
	VisibilityPublic Visibility = "public"
	VisibilityPaid   Visibility = "paid"
)

// ContentItem is a single piece of media published by a creator.
// PriceMinorUnits is always in minor currency units (cents); public items
// carry price 0, paid items a strictly positive price.
type ContentItem struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatorID       string     `json:"creatorId" gorm:"type:uuid;not null;index"`
	MediaType       MediaType  `json:"mediaType" gorm:"type:varchar(10);not null"`
	Visibility      Visibility `json:"visibility" gorm:"type:varchar(10);not null"`
	PriceMinorUnits int64      `json:"priceMinorUnits" gorm:"not null;default:0"`
	MediaURL        string     `json:"mediaUrl" gorm:"column:media_url"`
	Description     string     `json:"description"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (ContentItem) TableName() string {
	return "content_items"
}

type ContentItemCreate struct {
	MediaType       MediaType  `json:"mediaType" binding:"required"`
	Visibility      Visibility `json:"visibility" binding:"required"`
	PriceMinorUnits int64      `json:"priceMinorUnits"`
	Description     string     `json:"description"`
}

// AccessDecision is the outcome AccessGate computes for a viewer/item pair.
type AccessDecision string

const (
	AccessFull   AccessDecision = "FULL"
	AccessLocked AccessDecision = "LOCKED"
)

// ShapedContentItem is the only representation of a content item that leaves
// the feed and content endpoints. When Access is LOCKED the media URL is
// absent and the description truncated; price and media type stay visible so
// a caller can render the paywall.
type ShapedContentItem struct {
	ID              string         `json:"id"`
	CreatorID       string         `json:"creatorId"`
	MediaType       MediaType      `json:"mediaType"`
	Visibility      Visibility     `json:"visibility"`
	PriceMinorUnits int64          `json:"priceMinorUnits"`
	MediaURL        string         `json:"mediaUrl,omitempty"`
	Description     string         `json:"description"`
	Access          AccessDecision `json:"access"`
	CreatedAt       time.Time      `json:"createdAt"`
}
