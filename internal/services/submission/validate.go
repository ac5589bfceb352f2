package submission

import (
	"errors"
	"net/url"

	"github.com/snapai/showcase/internal/services/github"
)

var (
	// ErrMissingFields reports all required-field gaps as one combined error
	// rather than field-by-field.
	ErrMissingFields     = errors.New("Please fill in all required fields and select an icon file")
	ErrInvalidGitHubURL  = errors.New("Please enter a valid GitHub profile URL (e.g., https://github.com/username)")
	ErrInvalidWebsiteURL = errors.New("Please enter a valid website URL")
)

// CreateRequest carries the submission form fields. The icon file content
// travels separately.
type CreateRequest struct {
	Command       string `json:"command"`
	Prompt        string `json:"prompt"`
	GitHubProfile string `json:"github_profile"`
	WebsiteURL    string `json:"website_url"`
	Description   string `json:"description"`
}

// ValidateForm checks the form in a fixed order: required-field presence,
// then GitHub URL shape, then website URL shape. The first failure wins.
// hasFile tells whether an icon file accompanied the form.
func ValidateForm(req *CreateRequest, hasFile bool) error {
	if !hasFile || req.Command == "" || req.Prompt == "" || req.GitHubProfile == "" {
		return ErrMissingFields
	}
	if !github.ValidProfileURL(req.GitHubProfile) {
		return ErrInvalidGitHubURL
	}
	if req.WebsiteURL != "" && !validAbsoluteURL(req.WebsiteURL) {
		return ErrInvalidWebsiteURL
	}
	return nil
}

func validAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
