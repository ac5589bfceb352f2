package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/snapai/showcase/internal/models"
	"github.com/snapai/showcase/pkg/database"
)

const (
	acceptHeader = "application/vnd.github.v3+json"
	userAgent    = "SnapAI-Showcase"
	fetchTimeout = 4 * time.Second
)

var (
	ErrInvalidProfileURL  = errors.New("invalid github profile url")
	ErrProfileUnavailable = errors.New("github profile unavailable")
)

// profileURLRegex matches a bare profile URL: scheme, optional www, a single
// handle path segment, optional trailing slash. Deeper paths (repos, gists)
// and other hosts do not count as a profile.
var profileURLRegex = regexp.MustCompile(`^https?://(www\.)?github\.com/[a-zA-Z0-9_-]+/?$`)

// ValidProfileURL reports whether raw is a well-formed GitHub profile URL.
func ValidProfileURL(raw string) bool {
	return profileURLRegex.MatchString(raw)
}

// ExtractUsername returns the handle from a GitHub profile URL: the first
// path segment after the host. Case-sensitive; trailing slash ignored.
func ExtractUsername(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "github.com" {
		return "", false
	}

	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			return part, true
		}
	}
	return "", false
}

// Client fetches public GitHub profiles. Lookups are best-effort and
// non-authoritative; callers treat any failure as "no profile data".
type Client struct {
	http     *http.Client
	baseURL  string
	redis    *redis.Client // nil disables caching
	cacheTTL time.Duration
}

func NewClient(baseURL string, redisClient *redis.Client, cacheTTL time.Duration) *Client {
	return &Client{
		http:     &http.Client{Timeout: fetchTimeout},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		redis:    redisClient,
		cacheTTL: cacheTTL,
	}
}

// apiUser is the wire shape of the GitHub users endpoint.
type apiUser struct {
	Login       string  `json:"login"`
	Name        *string `json:"name"`
	AvatarURL   string  `json:"avatar_url"`
	Bio         *string `json:"bio"`
	PublicRepos int     `json:"public_repos"`
	Followers   int     `json:"followers"`
	Following   int     `json:"following"`
	HTMLURL     string  `json:"html_url"`
}

// FetchProfile looks up a public profile by handle. Results are cached in
// Redis for a short TTL to stay clear of the unauthenticated API rate limit.
func (c *Client) FetchProfile(ctx context.Context, handle string) (*models.GitHubProfile, error) {
	if handle == "" {
		return nil, ErrInvalidProfileURL
	}

	if cached := c.cacheGet(ctx, handle); cached != nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/"+url.PathEscape(handle), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug().Int("status", resp.StatusCode).Str("handle", handle).Msg("GitHub API returned non-2xx")
		return nil, ErrProfileUnavailable
	}

	var u apiUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("failed to decode github profile: %w", err)
	}

	profile := &models.GitHubProfile{
		Username:    u.Login,
		Name:        u.Name,
		AvatarURL:   u.AvatarURL,
		Bio:         u.Bio,
		PublicRepos: u.PublicRepos,
		Followers:   u.Followers,
		Following:   u.Following,
		HTMLURL:     u.HTMLURL,
	}

	c.cacheSet(ctx, handle, profile)

	return profile, nil
}

// FetchProfileByURL extracts the handle from a profile URL and fetches it.
func (c *Client) FetchProfileByURL(ctx context.Context, profileURL string) (*models.GitHubProfile, error) {
	handle, ok := ExtractUsername(profileURL)
	if !ok {
		return nil, ErrInvalidProfileURL
	}
	return c.FetchProfile(ctx, handle)
}

func (c *Client) cacheGet(ctx context.Context, handle string) *models.GitHubProfile {
	if c.redis == nil {
		return nil
	}

	data, err := c.redis.Get(ctx, database.KeyPrefixGitHubProfile+handle).Bytes()
	if err != nil {
		return nil
	}

	var profile models.GitHubProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}
	return &profile
}

func (c *Client) cacheSet(ctx context.Context, handle string, profile *models.GitHubProfile) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, database.KeyPrefixGitHubProfile+handle, data, c.cacheTTL).Err(); err != nil {
		log.Debug().Err(err).Str("handle", handle).Msg("Failed to cache GitHub profile")
	}
}
