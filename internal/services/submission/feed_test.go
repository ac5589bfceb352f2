package submission

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapai/showcase/internal/models"
)

func strptr(s string) *string { return &s }

func testIconURL(sub *models.Submission) string {
	if sub.IconPath != nil {
		return "http://cdn.test/icons/" + *sub.IconPath
	}
	return ""
}

func makeSubmissions(n int, featured int) []models.Submission {
	subs := make([]models.Submission, 0, n)
	base := time.Now()
	for i := 0; i < n; i++ {
		path := fmt.Sprintf("owner/%d.png", i)
		subs = append(subs, models.Submission{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			IconPath:  &path,
			Prompt:    "prompt",
			Approved:  true,
			Featured:  i < featured,
			CreatedAt: base.Add(-time.Duration(i) * time.Minute),
		})
	}
	return subs
}

func TestComposeFeedSplit(t *testing.T) {
	subs := makeSubmissions(5, 2)

	feed := composeFeed(subs, nil, 1, testIconURL)

	assert.Len(t, feed.Featured, 2)
	assert.Len(t, feed.Regular, 3)
	assert.Equal(t, 1, feed.Page)
	assert.Equal(t, PageSize, feed.PageSize)
	assert.False(t, feed.HasMore)
}

func TestComposeFeedHasMore(t *testing.T) {
	tests := []struct {
		name string
		rows int
		want bool
	}{
		{name: "partial page", rows: 5, want: false},
		{name: "empty page", rows: 0, want: false},
		{name: "full page", rows: PageSize, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed := composeFeed(makeSubmissions(tt.rows, 0), nil, 1, testIconURL)
			assert.Equal(t, tt.want, feed.HasMore)
		})
	}
}

func TestComposeFeedEmptySlicesNotNil(t *testing.T) {
	feed := composeFeed(nil, nil, 3, testIconURL)

	// JSON consumers expect arrays, not null
	require.NotNil(t, feed.Featured)
	require.NotNil(t, feed.Regular)
	assert.Equal(t, 3, feed.Page)
}

func TestComposeFeedPreservesOrderWithinSplit(t *testing.T) {
	subs := makeSubmissions(6, 3)

	feed := composeFeed(subs, nil, 1, testIconURL)

	require.Len(t, feed.Featured, 3)
	for i, view := range feed.Featured {
		assert.Equal(t, subs[i].ID, view.ID)
	}
	require.Len(t, feed.Regular, 3)
	for i, view := range feed.Regular {
		assert.Equal(t, subs[3+i].ID, view.ID)
	}
}

func TestComposeFeedJoinsAuthors(t *testing.T) {
	subs := makeSubmissions(2, 0)
	authors := map[uuid.UUID]*models.SubmissionAuthor{
		subs[0].UserID: {ID: subs[0].UserID, Email: "alice@example.com"},
	}

	feed := composeFeed(subs, authors, 1, testIconURL)

	require.Len(t, feed.Regular, 2)
	require.NotNil(t, feed.Regular[0].Author)
	assert.Equal(t, "alice", feed.Regular[0].AuthorName)
	assert.Nil(t, feed.Regular[1].Author)
	assert.Equal(t, "Anonymous", feed.Regular[1].AuthorName)
}

func TestAuthorDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		sub    models.Submission
		author *models.SubmissionAuthor
		want   string
	}{
		{
			name: "submission snapshot name wins",
			sub:  models.Submission{GitHubName: strptr("The Octocat"), GitHubUsername: strptr("octocat")},
			author: &models.SubmissionAuthor{
				GitHubName:     strptr("Current Name"),
				GitHubUsername: strptr("currenthandle"),
				Email:          "user@example.com",
			},
			want: "The Octocat",
		},
		{
			name:   "author name when snapshot has none",
			sub:    models.Submission{},
			author: &models.SubmissionAuthor{GitHubName: strptr("Current Name"), Email: "user@example.com"},
			want:   "Current Name",
		},
		{
			name: "snapshot handle before author handle",
			sub:  models.Submission{GitHubUsername: strptr("octocat")},
			author: &models.SubmissionAuthor{
				GitHubUsername: strptr("currenthandle"),
				Email:          "user@example.com",
			},
			want: "octocat",
		},
		{
			name:   "author handle when snapshot empty",
			sub:    models.Submission{},
			author: &models.SubmissionAuthor{GitHubUsername: strptr("currenthandle"), Email: "user@example.com"},
			want:   "currenthandle",
		},
		{
			name:   "email local part as last resort",
			sub:    models.Submission{},
			author: &models.SubmissionAuthor{Email: "jane.doe@example.com"},
			want:   "jane.doe",
		},
		{
			name: "anonymous without author",
			sub:  models.Submission{},
			want: "Anonymous",
		},
		{
			name:   "anonymous when email malformed",
			sub:    models.Submission{},
			author: &models.SubmissionAuthor{Email: "no-at-sign"},
			want:   "Anonymous",
		},
		{
			name:   "empty name pointer skipped",
			sub:    models.Submission{GitHubName: strptr("")},
			author: &models.SubmissionAuthor{GitHubUsername: strptr("handle"), Email: "user@example.com"},
			want:   "handle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AuthorDisplayName(&tt.sub, tt.author))
		})
	}
}

func TestBuildViewResolvesDisplayFields(t *testing.T) {
	path := "owner/icon.png"
	sub := models.Submission{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		IconPath: &path,
		Approved: true,
		Featured: true,
	}

	view := buildView(&sub, nil, testIconURL)

	assert.Equal(t, "http://cdn.test/icons/owner/icon.png", view.DisplayURL)
	assert.Equal(t, models.StatusFeatured, view.StatusValue)
}
