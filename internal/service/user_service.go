package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"microblog/internal/logging"
	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/storage"
)

type UserService interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error)
	TouchLastSeen(ctx context.Context, userID int64) error
	UploadAvatar(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	storage  storage.Storage
	log      logging.Logger
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository, storage storage.Storage, log logging.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		storage:  storage,
		log:      log,
		now:      time.Now,
	}
}

func (s *userService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetUserByUsername(ctx, username)
}

func (s *userService) UpdateProfile(ctx context.Context, req repository.UpdateProfileRequest) (*models.User, error) {
	// get user by id
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.AboutMe = req.AboutMe

	// update user
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) TouchLastSeen(ctx context.Context, userID int64) error {
	return s.userRepo.TouchLastSeen(ctx, userID, s.now())
}

// UploadAvatar stores the new image, points the profile at it and then drops
// the previous object. A failed database update removes the fresh upload.
func (s *userService) UploadAvatar(ctx context.Context, userID int64, fileName string, file io.Reader, size int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	objectName, avatarURL, err := s.storage.UploadAvatar(ctx, userID, fileName, file, size)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки аватара: %w", err)
	}

	if err := s.userRepo.UpdateAvatar(ctx, userID, avatarURL); err != nil {
		if delErr := s.storage.DeleteObject(ctx, objectName); delErr != nil {
			s.log.Warn(ctx, "orphaned avatar object", "object", objectName, "error", delErr)
		}
		return nil, err
	}

	if old, ok := s.storage.ObjectName(user.AvatarURL); ok {
		if err := s.storage.DeleteObject(ctx, old); err != nil {
			s.log.Warn(ctx, "old avatar not removed", "object", old, "error", err)
		}
	}

	user.AvatarURL = avatarURL
	return user, nil
}
