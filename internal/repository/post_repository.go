package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"openblog/internal/apperr"
	"openblog/internal/models"
	"openblog/internal/visibility"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create вставляет пост с новым UUID. Коллизия сгенерированного
// идентификатора отдается как apperr.ErrConflict.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	now := time.Now()
	post.PublishDate = now
	post.UpdatedDate = now

	query := `
		INSERT INTO posts (post_id, author, title, visibility, publish_date, updated_date, content)
		VALUES (:post_id, :author, :title, :visibility, :publish_date, :updated_date, :content)
	`

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("коллизия идентификатора поста %s: %w", post.PostID, apperr.ErrConflict)
		}
		return fmt.Errorf("ошибка при создании поста: %w", apperr.ErrTransient)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", apperr.ErrTransient)
	}

	return &post, nil
}

// List выполняет предикат видимости: условие, затем сортировка, затем
// limit. Сбой хранилища на чтении списка деградирует до пустого
// результата - ошибка логируется, но не отдается наружу.
func (r *postRepository) List(ctx context.Context, query visibility.Query) ([]models.Post, error) {
	sqlQuery, args := query.SQL(`SELECT * FROM posts`)

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, sqlQuery, args...)
	if err != nil {
		log.Printf("ошибка при получении списка постов, возвращаем пустой результат: %v", err)
		return []models.Post{}, nil
	}

	return posts, nil
}

// Update меняет только изменяемые поля: title, visibility, content и
// updated_date. author и publish_date после создания неизменяемы.
func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedDate = time.Now()

	query := `
		UPDATE posts SET
			title = :title,
			visibility = :visibility,
			content = :content,
			updated_date = :updated_date
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", apperr.ErrTransient)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", apperr.ErrTransient)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, apperr.ErrNotFound)
	}

	return nil
}

// DeleteByAuthor удаляет пост только если его автор совпадает с
// claimedAuthor без учета регистра. Оба исхода - удалено и нечего
// удалять - успешные, не ошибки.
func (r *postRepository) DeleteByAuthor(ctx context.Context, postID, author string) (bool, error) {
	query := `DELETE FROM posts WHERE post_id = $1 AND LOWER(author) = LOWER($2)`

	result, err := r.db.ExecContext(ctx, query, postID, author)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении поста: %w", apperr.ErrTransient)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", apperr.ErrTransient)
	}

	return rowsAffected > 0, nil
}
