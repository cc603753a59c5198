package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"microblog/internal/models"
	"microblog/internal/repository"
)

type edge struct {
	follower, followed int64
}

// memStore is an in-memory stand-in for the user, post and follow tables.
type memStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	edges  map[edge]struct{}
	posts  []models.Post
	nextID int64
	clock  time.Time
	tick   time.Duration
	err    error
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[int64]*models.User),
		edges: make(map[edge]struct{}),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		tick:  time.Second,
	}
}

func (s *memStore) addUser(username string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u := &models.User{ID: s.nextID, Username: username, Email: username + "@example.com"}
	s.users[u.ID] = u
	return u
}

func (s *memStore) post(author *models.User, body string) models.Post {
	p := &models.Post{Body: body, UserID: author.ID}
	if err := s.Create(context.Background(), p); err != nil {
		panic(err)
	}
	return *p
}

func (s *memStore) edgeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.edges)
}

// UserRepository

func (s *memStore) CreateUser(_ context.Context, user *models.User, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrUserExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	s.nextID++
	user.ID = s.nextID
	user.PasswordHash = string(hash)
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memStore) find(match func(*models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if match(u) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memStore) GetUserByID(_ context.Context, userID int64) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.ID == userID })
}

func (s *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Username == username })
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return s.find(func(u *models.User) bool { return u.Email == email })
}

func (s *memStore) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, repository.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, repository.ErrInvalidCredentials
	}
	return u, nil
}

func (s *memStore) UpdateProfile(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID != user.ID && u.Username == user.Username {
			return repository.ErrUserExists
		}
	}
	u, ok := s.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Username, u.AboutMe = user.Username, user.AboutMe
	return nil
}

func (s *memStore) UpdateAvatar(_ context.Context, userID int64, avatarURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AvatarURL = avatarURL
	return nil
}

func (s *memStore) TouchLastSeen(_ context.Context, userID int64, seenAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.LastSeen = seenAt
	}
	return nil
}

func (s *memStore) UpdateRefreshToken(_ context.Context, userID int64, refreshToken string, expiryTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.RefreshToken = &refreshToken
	u.RefreshTokenExpiryTime = &expiryTime
	return nil
}

func (s *memStore) GetUserByRefreshToken(_ context.Context, refreshToken string) (*models.User, error) {
	u, err := s.find(func(u *models.User) bool {
		return u.RefreshToken != nil && *u.RefreshToken == refreshToken &&
			u.RefreshTokenExpiryTime != nil && u.RefreshTokenExpiryTime.After(time.Now())
	})
	if err != nil {
		return nil, repository.ErrInvalidToken
	}
	return u, nil
}

// FollowRepository

func (s *memStore) Follow(_ context.Context, followerID, followedID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return false, s.err
	}
	if followerID == followedID {
		return false, nil
	}
	if _, ok := s.users[followedID]; !ok {
		return false, fmt.Errorf("%w: %d", repository.ErrUserNotFound, followedID)
	}
	e := edge{followerID, followedID}
	if _, ok := s.edges[e]; ok {
		return false, nil
	}
	s.edges[e] = struct{}{}
	return true, nil
}

func (s *memStore) Unfollow(_ context.Context, followerID, followedID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return false, s.err
	}
	e := edge{followerID, followedID}
	if _, ok := s.edges[e]; !ok {
		return false, nil
	}
	delete(s.edges, e)
	return true, nil
}

func (s *memStore) IsFollowing(_ context.Context, followerID, followedID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.edges[edge{followerID, followedID}]
	return ok, nil
}

func (s *memStore) Counts(_ context.Context, userID int64) (models.FollowCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c models.FollowCounts
	for e := range s.edges {
		if e.followed == userID {
			c.Followers++
		}
		if e.follower == userID {
			c.Following++
		}
	}
	return c, nil
}

// PostRepository

func (s *memStore) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	u, ok := s.users[post.UserID]
	if !ok {
		return repository.ErrUserNotFound
	}
	s.nextID++
	s.clock = s.clock.Add(s.tick)
	post.ID = s.nextID
	post.Timestamp = s.clock
	post.Author = u.Username
	s.posts = append(s.posts, *post)
	return nil
}

func (s *memStore) FollowedPosts(_ context.Context, userID int64, limit, offset int) ([]models.Post, int, error) {
	return s.page(func(p models.Post) bool {
		if p.UserID == userID {
			return true
		}
		_, ok := s.edges[edge{userID, p.UserID}]
		return ok
	}, limit, offset)
}

func (s *memStore) AllPosts(_ context.Context, limit, offset int) ([]models.Post, int, error) {
	return s.page(func(models.Post) bool { return true }, limit, offset)
}

func (s *memStore) PostsByAuthor(_ context.Context, authorID int64, limit, offset int) ([]models.Post, int, error) {
	return s.page(func(p models.Post) bool { return p.UserID == authorID }, limit, offset)
}

func (s *memStore) page(keep func(models.Post) bool, limit, offset int) ([]models.Post, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, 0, s.err
	}

	var matched []models.Post
	for _, p := range s.posts {
		if keep(p) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Timestamp.Equal(matched[j].Timestamp) {
			return matched[i].Timestamp.After(matched[j].Timestamp)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if offset >= total {
		return []models.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
