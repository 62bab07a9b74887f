package models

import (
	"time"
)

// User is the profile surface supplied by the external identity/profile
// provider. This service only reads it.
type User struct {
	ID               string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserName         string    `json:"userName" gorm:"unique;not null"`
	AvatarURL        string    `json:"avatarUrl" gorm:"column:avatar_url"`
	Bio              string    `json:"bio"`
	StripeCustomerID string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
