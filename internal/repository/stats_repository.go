package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"openblog/internal/apperr"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountUsers(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете пользователей: %w", apperr.ErrTransient)
	}

	return count, nil
}

func (r *statsRepository) CountPosts(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчете постов: %w", apperr.ErrTransient)
	}

	return count, nil
}
