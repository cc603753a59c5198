package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/database"
	"microblog/internal/models"
)

// followedCondition selects the user's own posts and the posts of every
// account the user follows. $1 is the reader.
const followedCondition = `p.user_id = $1 OR p.user_id IN (
		SELECT f.followed_id FROM followers f WHERE f.follower_id = $1
	)`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

type CreatePostRequest struct {
	UserID int64  `json:"userId"`
	Body   string `json:"body"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	// returns the author's current username along with the new row
	query := `
		WITH inserted AS (
			INSERT INTO posts (body, user_id, language)
			VALUES ($1, $2, $3)
			RETURNING id, timestamp, user_id
		)
		SELECT i.id, i.timestamp, u.username
		FROM inserted i
		JOIN users u ON u.id = i.user_id
	`

	err := r.DB.QueryRowxContext(ctx, query, post.Body, post.UserID, post.Language).
		Scan(&post.ID, &post.Timestamp, &post.Author)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %d", ErrUserNotFound, post.UserID)
		}
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) FollowedPosts(ctx context.Context, userID int64, limit, offset int) ([]models.Post, int, error) {
	return r.page(ctx, followedCondition, []any{userID}, limit, offset)
}

func (r *PostRepositoryImpl) AllPosts(ctx context.Context, limit, offset int) ([]models.Post, int, error) {
	return r.page(ctx, "", nil, limit, offset)
}

func (r *PostRepositoryImpl) PostsByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, int, error) {
	return r.page(ctx, "p.user_id = $1", []any{authorID}, limit, offset)
}

// page counts the matching posts and reads one slice of them inside a single
// read-only transaction, so the total always agrees with the items.
func (r *PostRepositoryImpl) page(ctx context.Context, condition string, args []any, limit, offset int) ([]models.Post, int, error) {
	where := ""
	if condition != "" {
		where = " WHERE " + condition
	}

	countQuery := `SELECT COUNT(*) FROM posts p` + where
	selectQuery := fmt.Sprintf(`
		SELECT p.id, p.body, p.timestamp, p.user_id, p.language, u.username AS author
		FROM posts p
		JOIN users u ON u.id = p.user_id%s
		ORDER BY p.timestamp DESC, p.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)

	var (
		total int
		posts []models.Post
	)

	err := database.WithTx(ctx, r.DB, database.ReadOnly, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &total, countQuery, args...); err != nil {
			return fmt.Errorf("ошибка при подсчёте постов: %w", err)
		}

		if total == 0 || offset >= total {
			return nil
		}

		pageArgs := append(append([]any{}, args...), limit, offset)
		if err := tx.SelectContext(ctx, &posts, selectQuery, pageArgs...); err != nil {
			return fmt.Errorf("ошибка при получении постов: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	if posts == nil {
		posts = []models.Post{}
	}

	return posts, total, nil
}
