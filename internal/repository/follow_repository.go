package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the edge and reports whether it was new. An existing edge
// is left untouched.
func (r *followRepository) Follow(ctx context.Context, followerID, followedID int64) (bool, error) {
	if followerID == followedID {
		return false, nil
	}

	query := `
		INSERT INTO followers (follower_id, followed_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followed_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: %d", ErrUserNotFound, followedID)
		}
		return false, fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке добавленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `DELETE FROM followers WHERE follower_id = $1 AND followed_id = $2`

	result, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM followers WHERE follower_id = $1 AND followed_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, followerID, followedID); err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return exists, nil
}

func (r *followRepository) Counts(ctx context.Context, userID int64) (models.FollowCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM followers WHERE followed_id = $1) AS followers,
			(SELECT COUNT(*) FROM followers WHERE follower_id = $1) AS following
	`

	var counts models.FollowCounts
	if err := r.db.GetContext(ctx, &counts, query, userID); err != nil {
		return models.FollowCounts{}, fmt.Errorf("ошибка при подсчёте подписок: %w", err)
	}

	return counts, nil
}
