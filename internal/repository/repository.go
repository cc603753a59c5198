package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"microblog/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateAvatar(ctx context.Context, userID int64, avatarURL string) error
	TouchLastSeen(ctx context.Context, userID int64, seenAt time.Time) error
	UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

// PostRepository reads feeds as (items, total) pairs ordered by
// timestamp DESC, id DESC.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FollowedPosts(ctx context.Context, userID int64, limit, offset int) ([]models.Post, int, error)
	AllPosts(ctx context.Context, limit, offset int) ([]models.Post, int, error)
	PostsByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int, error)
}

// FollowRepository stores the follower -> followed edge set.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedID int64) (bool, error)
	Unfollow(ctx context.Context, followerID, followedID int64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error)
	Counts(ctx context.Context, userID int64) (models.FollowCounts, error)
}

type StatsRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
	CountRows(ctx context.Context) (models.RowCounts, error)
}

type Repository struct {
	User   UserRepository
	Post   PostRepository
	Follow FollowRepository
	Stats  StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Follow: NewFollowRepository(db),
		Stats:  NewStatsRepository(db),
	}
}
