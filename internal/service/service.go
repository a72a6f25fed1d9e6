package service

import (
	"openblog/internal/config"
	"openblog/internal/repository"
	"openblog/internal/storage"
)

type Service struct {
	Auth  AuthService
	Post  PostService
	Stats StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:  NewAuthService(rep.User, cfg),
		Post:  NewPostService(rep.Post, rep.Attachment, storage, cfg),
		Stats: NewStatsService(rep.Stats),
	}
}
