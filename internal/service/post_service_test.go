package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/logging"
	"microblog/internal/repository"
)

func newPostFixture() (*memStore, *postService) {
	store := newMemStore()
	svc := NewPostService(store, logging.Nop()).(*postService)
	svc.guess = func(string) string { return "en" }
	return store, svc
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание", func(t *testing.T) {
		store, svc := newPostFixture()
		a := store.addUser("alice")

		post, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: "  hello world  "})

		require.NoError(t, err)
		assert.NotZero(t, post.ID)
		assert.Equal(t, "hello world", post.Body)
		assert.Equal(t, "en", post.Language)
		assert.False(t, post.Timestamp.IsZero())
	})

	t.Run("Автор после переименования", func(t *testing.T) {
		store, svc := newPostFixture()
		a := store.addUser("alice")
		users := NewUserService(store, new(MockStorage), logging.Nop())
		_, err := users.UpdateProfile(ctx, repository.UpdateProfileRequest{UserID: a.ID, Username: "alice2"})
		require.NoError(t, err)

		post, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: "hi"})

		require.NoError(t, err)
		assert.Equal(t, "alice2", post.Author)
	})

	t.Run("Пустой пост", func(t *testing.T) {
		store, svc := newPostFixture()
		a := store.addUser("alice")

		_, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: "   "})

		assert.ErrorIs(t, err, ErrInvalidPost)
	})

	t.Run("Слишком длинный пост", func(t *testing.T) {
		store, svc := newPostFixture()
		a := store.addUser("alice")

		_, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: strings.Repeat("a", MaxPostLength+1)})

		assert.ErrorIs(t, err, ErrInvalidPost)
	})

	t.Run("Длина считается в символах", func(t *testing.T) {
		store, svc := newPostFixture()
		a := store.addUser("alice")

		post, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: strings.Repeat("я", MaxPostLength)})

		require.NoError(t, err)
		assert.Equal(t, MaxPostLength, len([]rune(post.Body)))
	})

	t.Run("Язык не определён", func(t *testing.T) {
		store, svc := newPostFixture()
		svc.guess = func(string) string { return "" }
		a := store.addUser("alice")

		post, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: "ok"})

		require.NoError(t, err)
		assert.Empty(t, post.Language)
	})

	t.Run("Ошибка хранилища", func(t *testing.T) {
		store, svc := newPostFixture()
		a := store.addUser("alice")
		storageErr := errors.New("insert failed")
		store.err = storageErr

		_, err := svc.CreatePost(ctx, repository.CreatePostRequest{UserID: a.ID, Body: "hello"})

		assert.ErrorIs(t, err, storageErr)
	})
}
