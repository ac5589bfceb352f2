package submission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRequest() *CreateRequest {
	return &CreateRequest{
		Command:       "/imagine a rocket icon",
		Prompt:        "minimalist rocket, flat design",
		GitHubProfile: "https://github.com/octocat",
	}
}

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CreateRequest)
		hasFile bool
		wantErr error
	}{
		{name: "complete form", mutate: func(r *CreateRequest) {}, hasFile: true},
		{name: "missing file", mutate: func(r *CreateRequest) {}, hasFile: false, wantErr: ErrMissingFields},
		{name: "missing command", mutate: func(r *CreateRequest) { r.Command = "" }, hasFile: true, wantErr: ErrMissingFields},
		{name: "missing prompt", mutate: func(r *CreateRequest) { r.Prompt = "" }, hasFile: true, wantErr: ErrMissingFields},
		{name: "missing github profile", mutate: func(r *CreateRequest) { r.GitHubProfile = "" }, hasFile: true, wantErr: ErrMissingFields},
		{name: "bad github url", mutate: func(r *CreateRequest) { r.GitHubProfile = "https://gitlab.com/octocat" }, hasFile: true, wantErr: ErrInvalidGitHubURL},
		{name: "github repo url", mutate: func(r *CreateRequest) { r.GitHubProfile = "https://github.com/octocat/repo" }, hasFile: true, wantErr: ErrInvalidGitHubURL},
		{name: "bad website url", mutate: func(r *CreateRequest) { r.WebsiteURL = "not-a-url" }, hasFile: true, wantErr: ErrInvalidWebsiteURL},
		{name: "relative website url", mutate: func(r *CreateRequest) { r.WebsiteURL = "/about" }, hasFile: true, wantErr: ErrInvalidWebsiteURL},
		{name: "good website url", mutate: func(r *CreateRequest) { r.WebsiteURL = "https://example.com" }, hasFile: true},
		{name: "website optional", mutate: func(r *CreateRequest) { r.WebsiteURL = "" }, hasFile: true},
		{name: "description optional", mutate: func(r *CreateRequest) { r.Description = "" }, hasFile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := ValidateForm(req, tt.hasFile)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// Presence failures report before URL shape failures, as one combined error.
func TestValidateFormErrorOrdering(t *testing.T) {
	req := &CreateRequest{
		Command:       "",
		Prompt:        "a prompt",
		GitHubProfile: "https://gitlab.com/octocat",
		WebsiteURL:    "not-a-url",
	}

	assert.ErrorIs(t, ValidateForm(req, true), ErrMissingFields)

	req.Command = "/imagine"
	assert.ErrorIs(t, ValidateForm(req, true), ErrInvalidGitHubURL)

	req.GitHubProfile = "https://github.com/octocat"
	assert.ErrorIs(t, ValidateForm(req, true), ErrInvalidWebsiteURL)
}
