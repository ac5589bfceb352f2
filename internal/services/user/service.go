package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/snapai/showcase/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, email, password_hash, is_admin,
			github_username, github_name, github_avatar_url, github_bio,
			created_at, updated_at
		FROM users WHERE id = $1`,
		userID,
	).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.IsAdmin,
		&user.GitHubUsername, &user.GitHubName, &user.GitHubAvatarURL, &user.GitHubBio,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// IsAdmin reports the current admin flag straight from the database, so a
// promotion or demotion applies to the next request.
func (s *Service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var isAdmin bool
	err := s.db.QueryRow(ctx,
		`SELECT is_admin FROM users WHERE id = $1`, userID,
	).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrUserNotFound
		}
		return false, err
	}
	return isAdmin, nil
}

// UpdateGitHubProfile denormalizes a GitHub snapshot onto the user row.
func (s *Service) UpdateGitHubProfile(ctx context.Context, userID uuid.UUID, username, name, avatarURL, bio *string) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET github_username = $2, github_name = $3,
			github_avatar_url = $4, github_bio = $5, updated_at = NOW()
		WHERE id = $1`,
		userID, username, name, avatarURL, bio,
	)
	return err
}
