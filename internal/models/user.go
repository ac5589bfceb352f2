package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	IsAdmin         bool      `json:"isAdmin" db:"is_admin"`
	GitHubUsername  *string   `json:"githubUsername,omitempty" db:"github_username"`
	GitHubName      *string   `json:"githubName,omitempty" db:"github_name"`
	GitHubAvatarURL *string   `json:"githubAvatarUrl,omitempty" db:"github_avatar_url"`
	GitHubBio       *string   `json:"githubBio,omitempty" db:"github_bio"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// PublicUser is a sanitized user for public API responses
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	IsAdmin         bool      `json:"isAdmin"`
	GitHubUsername  *string   `json:"githubUsername,omitempty"`
	GitHubName      *string   `json:"githubName,omitempty"`
	GitHubAvatarURL *string   `json:"githubAvatarUrl,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		IsAdmin:         u.IsAdmin,
		GitHubUsername:  u.GitHubUsername,
		GitHubName:      u.GitHubName,
		GitHubAvatarURL: u.GitHubAvatarURL,
		CreatedAt:       u.CreatedAt,
	}
}
