package submission

import (
	"strings"

	"github.com/google/uuid"

	"github.com/snapai/showcase/internal/models"
)

// PageSize is the fixed feed page size.
const PageSize = 12

// FeedPage is one window of the public showcase, split into disjoint
// featured and regular views derived from the same fetched page.
type FeedPage struct {
	Featured []models.SubmissionView `json:"featured"`
	Regular  []models.SubmissionView `json:"regular"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"pageSize"`
	HasMore  bool                    `json:"hasMore"`
}

// ModerationQueues is the admin view of all non-rejected submissions,
// split into the pending and approved queues.
type ModerationQueues struct {
	Pending  []models.SubmissionView `json:"pending"`
	Approved []models.SubmissionView `json:"approved"`
}

// composeFeed joins a fetched page of submissions with their authors and
// splits it into featured and regular views. hasMore assumes a full page
// means more rows exist; when the result set ends exactly on a page
// boundary this guesses wrong once, a known approximation carried over
// from the original.
func composeFeed(subs []models.Submission, authors map[uuid.UUID]*models.SubmissionAuthor, page int, iconURL func(*models.Submission) string) *FeedPage {
	feed := &FeedPage{
		Featured: []models.SubmissionView{},
		Regular:  []models.SubmissionView{},
		Page:     page,
		PageSize: PageSize,
		HasMore:  len(subs) == PageSize,
	}

	for i := range subs {
		view := buildView(&subs[i], authors[subs[i].UserID], iconURL)
		if subs[i].Featured {
			feed.Featured = append(feed.Featured, view)
		} else {
			feed.Regular = append(feed.Regular, view)
		}
	}

	return feed
}

// buildView resolves the presentation fields for one submission.
func buildView(sub *models.Submission, author *models.SubmissionAuthor, iconURL func(*models.Submission) string) models.SubmissionView {
	return models.SubmissionView{
		Submission:  *sub,
		Author:      author,
		AuthorName:  AuthorDisplayName(sub, author),
		DisplayURL:  iconURL(sub),
		StatusValue: sub.Status(),
	}
}

// AuthorDisplayName resolves the attribution line: GitHub display name, then
// GitHub handle, then the email local-part, then "Anonymous". The snapshot
// captured on the submission wins over the joined user row.
func AuthorDisplayName(sub *models.Submission, author *models.SubmissionAuthor) string {
	if name := deref(sub.GitHubName); name != "" {
		return name
	}
	if author != nil {
		if name := deref(author.GitHubName); name != "" {
			return name
		}
	}
	if handle := deref(sub.GitHubUsername); handle != "" {
		return handle
	}
	if author != nil {
		if handle := deref(author.GitHubUsername); handle != "" {
			return handle
		}
		if local, _, found := strings.Cut(author.Email, "@"); found && local != "" {
			return local
		}
	}
	return "Anonymous"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
