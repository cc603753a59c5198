package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
)

// FeedService composes paginated post feeds. Every feed is ordered by
// timestamp, then id, both descending; pages are 1-indexed and a page past
// the end is empty rather than an error.
type FeedService interface {
	FollowedPosts(ctx context.Context, userID int64, page int) (*models.Page, error)
	Explore(ctx context.Context, page int) (*models.Page, error)
	UserPosts(ctx context.Context, userID int64, page int) (*models.Page, error)
	PerPage() int
}

type feedService struct {
	postRepo repository.PostRepository
	perPage  int
}

func NewFeedService(postRepo repository.PostRepository, perPage int) FeedService {
	if perPage < 1 {
		perPage = 20
	}

	return &feedService{
		postRepo: postRepo,
		perPage:  perPage,
	}
}

func (s *feedService) PerPage() int {
	return s.perPage
}

// FollowedPosts is the home feed: the user's own posts and the posts of
// everyone the user follows at call time.
func (s *feedService) FollowedPosts(ctx context.Context, userID int64, page int) (*models.Page, error) {
	page = normalizePage(page)

	posts, total, err := s.postRepo.FollowedPosts(ctx, userID, s.perPage, models.Offset(page, s.perPage))
	if err != nil {
		return nil, err
	}

	return models.NewPage(posts, page, s.perPage, total), nil
}

// Explore ignores the follow graph and pages over every post.
func (s *feedService) Explore(ctx context.Context, page int) (*models.Page, error) {
	page = normalizePage(page)

	posts, total, err := s.postRepo.AllPosts(ctx, s.perPage, models.Offset(page, s.perPage))
	if err != nil {
		return nil, err
	}

	return models.NewPage(posts, page, s.perPage, total), nil
}

func (s *feedService) UserPosts(ctx context.Context, userID int64, page int) (*models.Page, error) {
	page = normalizePage(page)

	posts, total, err := s.postRepo.PostsByAuthor(ctx, userID, s.perPage, models.Offset(page, s.perPage))
	if err != nil {
		return nil, err
	}

	return models.NewPage(posts, page, s.perPage, total), nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
