package service

import (
	"context"
	"fmt"

	"microblog/internal/logging"
	"microblog/internal/models"
	"microblog/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, targetID int64) error
	Unfollow(ctx context.Context, followerID, targetID int64) error
	IsFollowing(ctx context.Context, followerID, targetID int64) (bool, error)
	FollowUsername(ctx context.Context, followerID int64, username string) (*models.User, error)
	UnfollowUsername(ctx context.Context, followerID int64, username string) (*models.User, error)
	Counts(ctx context.Context, userID int64) (models.FollowCounts, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	log        logging.Logger
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, log logging.Logger) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
		log:        log,
	}
}

// Follow adds the follower -> target edge. Existing edges and self edges are
// silently left as they are.
func (s *followService) Follow(ctx context.Context, followerID, targetID int64) error {
	if followerID == targetID {
		s.log.Debug(ctx, "self follow ignored", "user_id", followerID)
		return nil
	}

	created, err := s.followRepo.Follow(ctx, followerID, targetID)
	if err != nil {
		return err
	}

	if created {
		s.log.Info(ctx, "follow", "follower_id", followerID, "followed_id", targetID)
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, targetID int64) error {
	removed, err := s.followRepo.Unfollow(ctx, followerID, targetID)
	if err != nil {
		return err
	}

	if removed {
		s.log.Info(ctx, "unfollow", "follower_id", followerID, "followed_id", targetID)
	}

	return nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, targetID int64) (bool, error) {
	if followerID == targetID {
		return false, nil
	}
	return s.followRepo.IsFollowing(ctx, followerID, targetID)
}

func (s *followService) FollowUsername(ctx context.Context, followerID int64, username string) (*models.User, error) {
	target, err := s.resolveTarget(ctx, followerID, username)
	if err != nil {
		return nil, err
	}

	if err := s.Follow(ctx, followerID, target.ID); err != nil {
		return nil, err
	}

	return target, nil
}

func (s *followService) UnfollowUsername(ctx context.Context, followerID int64, username string) (*models.User, error) {
	target, err := s.resolveTarget(ctx, followerID, username)
	if err != nil {
		return nil, err
	}

	if err := s.Unfollow(ctx, followerID, target.ID); err != nil {
		return nil, err
	}

	return target, nil
}

func (s *followService) Counts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}

func (s *followService) resolveTarget(ctx context.Context, followerID int64, username string) (*models.User, error) {
	target, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if target.ID == followerID {
		return nil, fmt.Errorf("%w: %s", ErrSelfFollow, username)
	}

	return target, nil
}
