package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus is the moderation state of a submission. The database keeps
// three independent booleans (approved, featured, rejected) for compatibility
// with the original schema; core logic only ever sees this enum, so illegal
// combinations like featured-but-not-approved cannot circulate.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusFeatured SubmissionStatus = "featured"
	StatusRejected SubmissionStatus = "rejected"
)

// StatusFromFlags translates the three-boolean wire format into a status.
// Rejected wins over everything; a featured flag without approval is
// normalized back to the approval it actually has.
func StatusFromFlags(approved, featured, rejected bool) SubmissionStatus {
	switch {
	case rejected:
		return StatusRejected
	case approved && featured:
		return StatusFeatured
	case approved:
		return StatusApproved
	default:
		return StatusPending
	}
}

// Flags translates a status back into the three-boolean wire format.
func (s SubmissionStatus) Flags() (approved, featured, rejected bool) {
	switch s {
	case StatusRejected:
		return false, false, true
	case StatusFeatured:
		return true, true, false
	case StatusApproved:
		return true, false, false
	default:
		return false, false, false
	}
}

// CanFeature reports whether a feature action is legal from this status.
// An item must pass through approval before it can be featured.
func (s SubmissionStatus) CanFeature() bool {
	return s == StatusApproved || s == StatusFeatured
}

// Terminal reports whether the status admits no further transitions.
func (s SubmissionStatus) Terminal() bool {
	return s == StatusRejected
}

type Submission struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"userId" db:"user_id"`
	IconURL         *string   `json:"iconUrl,omitempty" db:"icon_url"` // legacy direct URL
	IconPath        *string   `json:"iconPath,omitempty" db:"icon_path"`
	Prompt          string    `json:"prompt" db:"prompt"`
	Command         *string   `json:"command,omitempty" db:"command"`
	GitHubProfile   string    `json:"githubProfile" db:"github_profile"`
	WebsiteURL      *string   `json:"websiteUrl,omitempty" db:"website_url"`
	Description     *string   `json:"description,omitempty" db:"description"`
	Approved        bool      `json:"approved" db:"approved"`
	Featured        bool      `json:"featured" db:"featured"`
	Rejected        bool      `json:"rejected" db:"rejected"`
	GitHubUsername  *string   `json:"githubUsername,omitempty" db:"github_username"`
	GitHubName      *string   `json:"githubName,omitempty" db:"github_name"`
	GitHubAvatarURL *string   `json:"githubAvatarUrl,omitempty" db:"github_avatar_url"`
	GitHubBio       *string   `json:"githubBio,omitempty" db:"github_bio"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Status derives the moderation state from the stored flags.
func (s *Submission) Status() SubmissionStatus {
	return StatusFromFlags(s.Approved, s.Featured, s.Rejected)
}

// SubmissionAuthor is the subset of the owning user joined into feed and
// moderation listings.
type SubmissionAuthor struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	IsAdmin         bool      `json:"isAdmin,omitempty"`
	GitHubUsername  *string   `json:"githubUsername,omitempty"`
	GitHubName      *string   `json:"githubName,omitempty"`
	GitHubAvatarURL *string   `json:"githubAvatarUrl,omitempty"`
}

// SubmissionView is a submission joined with its author and resolved display
// fields, ready for presentation.
type SubmissionView struct {
	Submission
	Author      *SubmissionAuthor `json:"author,omitempty"`
	AuthorName  string            `json:"authorName"`
	DisplayURL  string            `json:"displayUrl"`
	StatusValue SubmissionStatus  `json:"status"`
}
