package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"openblog/internal/apperr"
	"openblog/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser вставляет пользователя с уже вычисленным хэшем пароля.
// Уникальные индексы БД - последняя линия защиты от гонки между
// CheckUniqueness и вставкой, их нарушение отдается как ErrConflict.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}

	query := `
		INSERT INTO users (user_id, email, username, password_hash)
		VALUES (:user_id, :email, :username, :password_hash)
	`

	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email или username уже заняты: %w", apperr.ErrConflict)
		}
		return fmt.Errorf("ошибка при создании пользователя: %w", apperr.ErrTransient)
	}

	return nil
}

// CheckUniqueness независимо проверяет занятость email и username без
// учета регистра. Совпадение по email не означает совпадения по
// username и наоборот.
func (r *userRepository) CheckUniqueness(ctx context.Context, email, username string) (models.UniquenessReport, error) {
	query := `
		SELECT email, username FROM users
		WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($2)
	`

	var rows []models.User
	err := r.db.SelectContext(ctx, &rows, query, email, username)
	if err != nil {
		return models.UniquenessReport{}, fmt.Errorf("ошибка при проверке уникальности: %w", apperr.ErrTransient)
	}

	var report models.UniquenessReport
	for _, row := range rows {
		if strings.EqualFold(row.Email, email) {
			report.EmailTaken = true
		}
		if strings.EqualFold(row.Username, username) {
			report.UsernameTaken = true
		}
	}

	return report, nil
}

// GetByIdentifier ищет аккаунт по email или username без учета
// регистра. Совпадение должно указывать ровно на один аккаунт: если
// идентификатор задевает email одного аккаунта и username другого,
// это не совпадение, а NotFound.
func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `
		SELECT * FROM users
		WHERE LOWER(email) = LOWER($1) OR LOWER(username) = LOWER($1)
		LIMIT 2
	`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, identifier)
	if err != nil {
		return nil, fmt.Errorf("ошибка при поиске пользователя: %w", apperr.ErrTransient)
	}

	if len(users) != 1 {
		return nil, fmt.Errorf("пользователь %s: %w", identifier, apperr.ErrNotFound)
	}

	return &users[0], nil
}

// UpdatePassword меняет хэш пароля по паре username+email - оба поля
// должны совпасть с одной записью, чтобы исключить перезапись чужих
// учетных данных.
func (r *userRepository) UpdatePassword(ctx context.Context, username, email, newPasswordHash string) error {
	query := `
		UPDATE users SET password_hash = $1
		WHERE username = $2 AND email = $3
	`

	result, err := r.db.ExecContext(ctx, query, newPasswordHash, username, email)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пароля: %w", apperr.ErrTransient)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", apperr.ErrTransient)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь %s: %w", username, apperr.ErrNotFound)
	}

	return nil
}
