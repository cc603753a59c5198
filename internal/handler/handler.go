package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"microblog/internal/config"
	"microblog/internal/logging"
	"microblog/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	UserService   service.UserService
	AuthService   service.AuthService
	PostService   service.PostService
	FollowService service.FollowService
	FeedService   service.FeedService
	StatsService  service.StatsService
	Health        HealthChecker
	Cfg           *config.Config
	Validate      *validator.Validate
	Log           logging.Logger
}

func NewHandlers(service *service.Service, health HealthChecker, config *config.Config, log logging.Logger) *Handlers {
	return &Handlers{
		UserService:   service.User,
		AuthService:   service.Auth,
		PostService:   service.Post,
		FollowService: service.Follow,
		FeedService:   service.Feed,
		StatsService:  service.Stats,
		Health:        health,
		Cfg:           config,
		Validate:      NewValidator(),
		Log:           log,
	}
}
