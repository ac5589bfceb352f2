package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/snapai/showcase/internal/models"
	"github.com/snapai/showcase/internal/services/github"
	"github.com/snapai/showcase/internal/services/icon"
	"github.com/snapai/showcase/internal/services/user"
)

var (
	ErrNotFound    = errors.New("submission not found")
	ErrRejected    = errors.New("submission has been rejected")
	ErrNotApproved = errors.New("submission must be approved before it can be featured")
)

const submissionColumns = `id, user_id, icon_url, icon_path, prompt, command, github_profile,
	website_url, description, approved, featured, rejected,
	github_username, github_name, github_avatar_url, github_bio, created_at, updated_at`

// Service is the system of record for a submission's lifecycle: intake,
// feed composition, and moderation state transitions.
type Service struct {
	db     *pgxpool.Pool
	icons  *icon.Store
	github *github.Client
	users  *user.Service
}

func NewService(db *pgxpool.Pool, icons *icon.Store, githubClient *github.Client, users *user.Service) *Service {
	return &Service{
		db:     db,
		icons:  icons,
		github: githubClient,
		users:  users,
	}
}

// Create runs the intake pipeline for one submission: validate the form,
// upload the icon, enrich attribution from GitHub, insert the record. The
// upload always completes before the insert is attempted.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest, fileData []byte, contentType string) (*models.Submission, error) {
	if err := ValidateForm(req, len(fileData) > 0); err != nil {
		return nil, err
	}

	upload, err := s.icons.Upload(ctx, userID, fileData, contentType)
	if err != nil {
		return nil, err
	}

	// Enrichment is advisory: on any failure the record keeps handle-only
	// attribution and the submission proceeds.
	profile, err := s.github.FetchProfileByURL(ctx, req.GitHubProfile)
	if err != nil {
		log.Debug().Err(err).Str("url", req.GitHubProfile).Msg("GitHub enrichment failed, falling back to handle")
		profile = nil
	}

	now := time.Now()
	sub := &models.Submission{
		ID:            uuid.New(),
		UserID:        userID,
		IconPath:      &upload.Path,
		Prompt:        req.Prompt,
		Command:       optional(req.Command),
		GitHubProfile: req.GitHubProfile,
		WebsiteURL:    optional(req.WebsiteURL),
		Description:   optional(req.Description),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if profile != nil {
		sub.GitHubUsername = &profile.Username
		sub.GitHubName = profile.Name
		sub.GitHubAvatarURL = optional(profile.AvatarURL)
		sub.GitHubBio = profile.Bio
	} else if handle, ok := github.ExtractUsername(req.GitHubProfile); ok {
		sub.GitHubUsername = &handle
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO submissions (id, user_id, icon_path, prompt, command, github_profile,
			website_url, description, approved, featured, rejected,
			github_username, github_name, github_avatar_url, github_bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, FALSE, FALSE, $9, $10, $11, $12, $13, $14)`,
		sub.ID, sub.UserID, sub.IconPath, sub.Prompt, sub.Command, sub.GitHubProfile,
		sub.WebsiteURL, sub.Description,
		sub.GitHubUsername, sub.GitHubName, sub.GitHubAvatarURL, sub.GitHubBio,
		sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		// The uploaded object is not rolled back; the orphan is accepted and
		// logged for out-of-band cleanup.
		log.Warn().Str("path", upload.Path).Msg("Submission insert failed after upload, icon object orphaned")
		return nil, fmt.Errorf("failed to insert submission: %w", err)
	}

	// Best-effort denormalization onto the owner row for feed joins.
	if err := s.users.UpdateGitHubProfile(ctx, userID, sub.GitHubUsername, sub.GitHubName, sub.GitHubAvatarURL, sub.GitHubBio); err != nil {
		log.Warn().Err(err).Str("userId", userID.String()).Msg("Failed to denormalize GitHub profile onto user")
	}

	return sub, nil
}

// Feed returns one page of the public showcase: approved, not rejected,
// featured first, newest first within each group.
func (s *Service) Feed(ctx context.Context, page int) (*FeedPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PageSize

	subs, err := s.querySubmissions(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		WHERE approved AND NOT rejected
		ORDER BY featured DESC, created_at DESC
		LIMIT $1 OFFSET $2`,
		PageSize, offset,
	)
	if err != nil {
		return nil, err
	}

	authors, err := s.authorsByID(ctx, subs)
	if err != nil {
		return nil, err
	}

	return composeFeed(subs, authors, page, s.iconURL), nil
}

// AdminQueues returns every non-rejected submission for the moderation
// console, newest first, split into pending and approved. Rejected records
// stay hidden here too; rejection is terminal.
func (s *Service) AdminQueues(ctx context.Context) (*ModerationQueues, error) {
	subs, err := s.querySubmissions(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		WHERE NOT rejected
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}

	authors, err := s.authorsByID(ctx, subs)
	if err != nil {
		return nil, err
	}

	queues := &ModerationQueues{
		Pending:  []models.SubmissionView{},
		Approved: []models.SubmissionView{},
	}
	for i := range subs {
		view := buildView(&subs[i], authors[subs[i].UserID], s.iconURL)
		if subs[i].Approved {
			queues.Approved = append(queues.Approved, view)
		} else {
			queues.Pending = append(queues.Pending, view)
		}
	}

	return queues, nil
}

// ListMine returns the caller's own non-rejected submissions, newest first.
func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]models.SubmissionView, error) {
	subs, err := s.querySubmissions(ctx,
		`SELECT `+submissionColumns+` FROM submissions
		WHERE user_id = $1 AND NOT rejected
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}

	views := make([]models.SubmissionView, 0, len(subs))
	for i := range subs {
		views = append(views, buildView(&subs[i], nil, s.iconURL))
	}
	return views, nil
}

// SetApproval flips the approved flag. Unapproving also clears featured so
// the stored flags never encode featured-but-not-approved.
func (s *Service) SetApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	status, err := s.getStatus(ctx, id)
	if err != nil {
		return err
	}
	if status.Terminal() {
		return ErrRejected
	}

	if approved {
		_, err = s.db.Exec(ctx,
			`UPDATE submissions SET approved = TRUE, updated_at = NOW() WHERE id = $1 AND NOT rejected`, id)
	} else {
		_, err = s.db.Exec(ctx,
			`UPDATE submissions SET approved = FALSE, featured = FALSE, updated_at = NOW() WHERE id = $1 AND NOT rejected`, id)
	}
	return err
}

// SetFeatured toggles the featured flag. Featuring requires the record to be
// approved at the time of the action.
func (s *Service) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	status, err := s.getStatus(ctx, id)
	if err != nil {
		return err
	}
	if status.Terminal() {
		return ErrRejected
	}
	if featured && !status.CanFeature() {
		return ErrNotApproved
	}

	if featured {
		_, err = s.db.Exec(ctx,
			`UPDATE submissions SET featured = TRUE, updated_at = NOW() WHERE id = $1 AND approved AND NOT rejected`, id)
	} else {
		_, err = s.db.Exec(ctx,
			`UPDATE submissions SET featured = FALSE, updated_at = NOW() WHERE id = $1 AND NOT rejected`, id)
	}
	return err
}

// Reject raises the rejected flag, hiding the record from every feed and
// queue permanently. The approved and featured flags are left untouched;
// rejected wins over both. Rejecting twice is a no-op.
func (s *Service) Reject(ctx context.Context, id uuid.UUID) error {
	status, err := s.getStatus(ctx, id)
	if err != nil {
		return err
	}
	if status.Terminal() {
		return nil
	}

	_, err = s.db.Exec(ctx,
		`UPDATE submissions SET rejected = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (s *Service) getStatus(ctx context.Context, id uuid.UUID) (models.SubmissionStatus, error) {
	var approved, featured, rejected bool
	err := s.db.QueryRow(ctx,
		`SELECT approved, featured, rejected FROM submissions WHERE id = $1`, id,
	).Scan(&approved, &featured, &rejected)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return models.StatusFromFlags(approved, featured, rejected), nil
}

func (s *Service) querySubmissions(ctx context.Context, query string, args ...any) ([]models.Submission, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := rows.Scan(
			&sub.ID, &sub.UserID, &sub.IconURL, &sub.IconPath, &sub.Prompt, &sub.Command,
			&sub.GitHubProfile, &sub.WebsiteURL, &sub.Description,
			&sub.Approved, &sub.Featured, &sub.Rejected,
			&sub.GitHubUsername, &sub.GitHubName, &sub.GitHubAvatarURL, &sub.GitHubBio,
			&sub.CreatedAt, &sub.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// authorsByID fetches the owning users for a batch of submissions in a
// second query and returns them keyed by id; the join happens in memory.
func (s *Service) authorsByID(ctx context.Context, subs []models.Submission) (map[uuid.UUID]*models.SubmissionAuthor, error) {
	authors := make(map[uuid.UUID]*models.SubmissionAuthor)
	if len(subs) == 0 {
		return authors, nil
	}

	seen := make(map[uuid.UUID]bool, len(subs))
	ids := make([]uuid.UUID, 0, len(subs))
	for i := range subs {
		if !seen[subs[i].UserID] {
			seen[subs[i].UserID] = true
			ids = append(ids, subs[i].UserID)
		}
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, email, is_admin, github_username, github_name, github_avatar_url
		FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.SubmissionAuthor
		if err := rows.Scan(&a.ID, &a.Email, &a.IsAdmin, &a.GitHubUsername, &a.GitHubName, &a.GitHubAvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors[a.ID] = &a
	}
	return authors, rows.Err()
}

// iconURL resolves the displayable image for a submission: the storage path
// re-derived to a public URL when present, otherwise the legacy direct URL.
func (s *Service) iconURL(sub *models.Submission) string {
	if sub.IconPath != nil && *sub.IconPath != "" {
		return s.icons.PublicURL(*sub.IconPath)
	}
	if sub.IconURL != nil {
		return *sub.IconURL
	}
	return ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
