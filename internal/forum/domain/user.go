package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID
	Username        string
	Email           string
	PasswordHash    string // argon2id PHC string
	DisplayName     *string
	Bio             *string
	AvatarURL       *string
	ThemePreference *string
	IsAdmin         bool
	IsActive        bool // inactive accounts cannot log in
	CreatedAt       time.Time
	UpdatedAt       time.Time
	LastLogin       *time.Time
}

// ProfileUpdate carries the optional profile fields. Nil leaves a field
// unchanged.
type ProfileUpdate struct {
	DisplayName     *string
	Bio             *string
	AvatarURL       *string
	ThemePreference *string
}

// Apply copies the set fields of p onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.DisplayName != nil {
		u.DisplayName = p.DisplayName
	}
	if p.Bio != nil {
		u.Bio = p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = p.AvatarURL
	}
	if p.ThemePreference != nil {
		u.ThemePreference = p.ThemePreference
	}
}
