package service

import (
	"microblog/internal/config"
	"microblog/internal/logging"
	"microblog/internal/repository"
	"microblog/internal/storage"
)

type Service struct {
	User   UserService
	Post   PostService
	Auth   AuthService
	Follow FollowService
	Feed   FeedService
	Stats  StatsService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, log logging.Logger) *Service {
	return &Service{
		User:   NewUserService(rep.User, storage, log),
		Post:   NewPostService(rep.Post, log),
		Auth:   NewAuthService(rep.User, cfg),
		Follow: NewFollowService(rep.Follow, rep.User, log),
		Feed:   NewFeedService(rep.Post, cfg.PostsPerPage),
		Stats:  NewStatsService(rep.Stats),
	}
}
