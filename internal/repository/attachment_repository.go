package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"openblog/internal/apperr"
	"openblog/internal/models"
)

type attachmentRepository struct {
	db *sqlx.DB
}

func NewAttachmentRepository(db *sqlx.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	if attachment.AttachmentID == "" {
		attachment.AttachmentID = uuid.New().String()
	}
	attachment.CreatedAt = time.Now()

	query := `
		INSERT INTO attachments (attachment_id, post_id, object_name, attachment_url, created_at)
		VALUES (:attachment_id, :post_id, :object_name, :attachment_url, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, attachment)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("коллизия идентификатора вложения: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("ошибка при сохранении вложения: %w", apperr.ErrTransient)
	}

	return nil
}

func (r *attachmentRepository) GetByID(ctx context.Context, attachmentID string) (*models.Attachment, error) {
	query := `SELECT * FROM attachments WHERE attachment_id = $1`

	var attachment models.Attachment
	err := r.db.GetContext(ctx, &attachment, query, attachmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("вложение с ID %s: %w", attachmentID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении вложения: %w", apperr.ErrTransient)
	}

	return &attachment, nil
}

func (r *attachmentRepository) GetByPostID(ctx context.Context, postID string) ([]models.Attachment, error) {
	query := `SELECT * FROM attachments WHERE post_id = $1 ORDER BY created_at`

	attachments := []models.Attachment{}
	err := r.db.SelectContext(ctx, &attachments, query, postID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении вложений поста: %w", apperr.ErrTransient)
	}

	return attachments, nil
}

func (r *attachmentRepository) Delete(ctx context.Context, attachmentID string) error {
	query := `DELETE FROM attachments WHERE attachment_id = $1`

	result, err := r.db.ExecContext(ctx, query, attachmentID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении вложения: %w", apperr.ErrTransient)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", apperr.ErrTransient)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("вложение с ID %s: %w", attachmentID, apperr.ErrNotFound)
	}

	return nil
}
