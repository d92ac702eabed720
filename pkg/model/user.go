package model

import (
	"time"

	"gorm.io/gorm"
)

const DefaultTimezone = "UTC"

type User struct {
	ID                        uint `gorm:"primaryKey"`
	Email                     string
	HashedPassword            string
	CreatedAt                 time.Time
	EmailNotificationsEnabled bool
	PushNotificationsEnabled  bool
	Timezone                  string
}

func (u User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Timezone == "" {
		u.Timezone = DefaultTimezone
	}
	return nil
}

// NewUser returns a user with notifications switched on, as every new
// account starts out.
func NewUser(email, hashedPassword string) *User {
	return &User{
		Email:                     email,
		HashedPassword:            hashedPassword,
		EmailNotificationsEnabled: true,
		PushNotificationsEnabled:  true,
		Timezone:                  DefaultTimezone,
	}
}
