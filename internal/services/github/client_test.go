package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidProfileURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "https profile", url: "https://github.com/octocat", want: true},
		{name: "http profile", url: "http://github.com/octocat", want: true},
		{name: "www prefix", url: "https://www.github.com/octocat", want: true},
		{name: "trailing slash", url: "https://github.com/octocat/", want: true},
		{name: "hyphen and underscore", url: "https://github.com/some-user_1", want: true},
		{name: "repo path rejected", url: "https://github.com/octocat/hello-world", want: false},
		{name: "other host rejected", url: "https://gitlab.com/octocat", want: false},
		{name: "missing scheme", url: "github.com/octocat", want: false},
		{name: "empty", url: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidProfileURL(tt.url))
		})
	}
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{name: "plain profile", url: "https://github.com/octocat", want: "octocat", wantOK: true},
		{name: "trailing slash", url: "https://github.com/octocat/", want: "octocat", wantOK: true},
		{name: "www host", url: "https://www.github.com/octocat", want: "octocat", wantOK: true},
		{name: "case preserved", url: "https://github.com/OctoCat", want: "OctoCat", wantOK: true},
		{name: "other host", url: "https://gitlab.com/octocat", wantOK: false},
		{name: "no path", url: "https://github.com/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractUsername(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientFetchProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		assert.Equal(t, "SnapAI-Showcase", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"login": "octocat",
			"name": "The Octocat",
			"avatar_url": "https://avatars.githubusercontent.com/u/583231",
			"bio": null,
			"public_repos": 8,
			"followers": 9000,
			"following": 9,
			"html_url": "https://github.com/octocat"
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, time.Minute)

	profile, err := client.FetchProfile(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Username)
	require.NotNil(t, profile.Name)
	assert.Equal(t, "The Octocat", *profile.Name)
	assert.Nil(t, profile.Bio)
	assert.Equal(t, 9000, profile.Followers)
}

func TestClientFetchProfileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, time.Minute)

	_, err := client.FetchProfile(context.Background(), "no-such-user")
	assert.True(t, errors.Is(err, ErrProfileUnavailable))
}

func TestClientFetchProfileEmptyHandle(t *testing.T) {
	client := NewClient("https://api.github.com", nil, time.Minute)

	_, err := client.FetchProfile(context.Background(), "")
	assert.True(t, errors.Is(err, ErrInvalidProfileURL))
}

func TestClientFetchProfileByURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octocat", r.URL.Path)
		w.Write([]byte(`{"login": "octocat", "avatar_url": "", "html_url": ""}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, time.Minute)

	profile, err := client.FetchProfileByURL(context.Background(), "https://github.com/octocat/")
	require.NoError(t, err)
	assert.Equal(t, "octocat", profile.Username)

	_, err = client.FetchProfileByURL(context.Background(), "https://gitlab.com/octocat")
	assert.True(t, errors.Is(err, ErrInvalidProfileURL))
}
