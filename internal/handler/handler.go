package handlers

import (
	"github.com/go-playground/validator/v10"

	"openblog/internal/config"
	"openblog/internal/service"
)

type Handlers struct {
	AuthService  service.AuthService
	PostService  service.PostService
	StatsService service.StatsService
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(services *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:  services.Auth,
		PostService:  services.Post,
		StatsService: services.Stats,
		Cfg:          config,
		Validate:     validator.New(),
	}
}
