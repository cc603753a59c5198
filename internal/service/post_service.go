package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"microblog/internal/lang"
	"microblog/internal/logging"
	"microblog/internal/models"
	"microblog/internal/repository"
)

const MaxPostLength = 140

type PostService interface {
	CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	guess    func(string) string
	log      logging.Logger
}

func NewPostService(postRepo repository.PostRepository, log logging.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		guess:    lang.Guess,
		log:      log,
	}
}

// CreatePost stores a new post. The timestamp comes from the database and
// the language is a best-effort guess that may be empty.
func (p *postService) CreatePost(ctx context.Context, req repository.CreatePostRequest) (*models.Post, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" || utf8.RuneCountInString(body) > MaxPostLength {
		return nil, ErrInvalidPost
	}

	post := &models.Post{
		Body:     body,
		UserID:   req.UserID,
		Language: p.guess(body),
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	p.log.Info(ctx, "post created", "post_id", post.ID, "user_id", post.UserID, "language", post.Language)
	return post, nil
}
