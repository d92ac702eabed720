package schema

import (
	"strings"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

// TokenTypeBearer is the token_type of every issued token.
const TokenTypeBearer = "bearer"

type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func (u *UserCreate) Normalize() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) Normalize() {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

type UserProfileResponse struct {
	ID                        uint   `json:"id"`
	Email                     string `json:"email"`
	EmailNotificationsEnabled bool   `json:"email_notifications_enabled"`
	PushNotificationsEnabled  bool   `json:"push_notifications_enabled"`
	Timezone                  string `json:"timezone"`
}

type NotificationPreferencesUpdate struct {
	EmailNotificationsEnabled *bool   `json:"email_notifications_enabled"`
	PushNotificationsEnabled  *bool   `json:"push_notifications_enabled"`
	Timezone                  *string `json:"timezone" validate:"omitempty,timezone"`
}

// ApplyTo copies the provided preferences onto u.
func (p *NotificationPreferencesUpdate) ApplyTo(u *model.User) {
	if p.EmailNotificationsEnabled != nil {
		u.EmailNotificationsEnabled = *p.EmailNotificationsEnabled
	}
	if p.PushNotificationsEnabled != nil {
		u.PushNotificationsEnabled = *p.PushNotificationsEnabled
	}
	if p.Timezone != nil {
		u.Timezone = *p.Timezone
	}
}

type NotificationPreferencesResponse struct {
	EmailNotificationsEnabled bool   `json:"email_notifications_enabled"`
	PushNotificationsEnabled  bool   `json:"push_notifications_enabled"`
	Timezone                  string `json:"timezone"`
}

func FromUser(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email}
}

func FromUserProfile(u *model.User) UserProfileResponse {
	return UserProfileResponse{
		ID:                        u.ID,
		Email:                     u.Email,
		EmailNotificationsEnabled: u.EmailNotificationsEnabled,
		PushNotificationsEnabled:  u.PushNotificationsEnabled,
		Timezone:                  u.Timezone,
	}
}

func FromNotificationPreferences(u *model.User) NotificationPreferencesResponse {
	return NotificationPreferencesResponse{
		EmailNotificationsEnabled: u.EmailNotificationsEnabled,
		PushNotificationsEnabled:  u.PushNotificationsEnabled,
		Timezone:                  u.Timezone,
	}
}
