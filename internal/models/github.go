package models

// GitHubProfile is a snapshot of a public GitHub profile, fetched once per
// form session and copied into the submission at insert time. It is never
// re-fetched or reconciled afterward.
type GitHubProfile struct {
	Username    string  `json:"username"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	HTMLURL     string  `json:"html_url"`
}
