package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"openblog/internal/models"
	"openblog/internal/visibility"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	CheckUniqueness(ctx context.Context, email, username string) (models.UniquenessReport, error)
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, email, newPasswordHash string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	List(ctx context.Context, query visibility.Query) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	DeleteByAuthor(ctx context.Context, postID, author string) (bool, error)
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, attachmentID string) (*models.Attachment, error)
	GetByPostID(ctx context.Context, postID string) ([]models.Attachment, error)
	Delete(ctx context.Context, attachmentID string) error
}

type StatsRepository interface {
	CountUsers(ctx context.Context) (int, error)
	CountPosts(ctx context.Context) (int, error)
}

type Repository struct {
	User       UserRepository
	Post       PostRepository
	Attachment AttachmentRepository
	Stats      StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Post:       NewPostRepository(db),
		Attachment: NewAttachmentRepository(db),
		Stats:      NewStatsRepository(db),
	}
}

// isUniqueViolation распознает нарушение уникального индекса Postgres
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
