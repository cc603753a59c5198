package service

import "errors"

var (
	// ErrSelfFollow is returned to callers that try to follow or unfollow
	// themselves through the username-based entry points.
	ErrSelfFollow  = errors.New("нельзя подписаться на самого себя")
	ErrInvalidPost = errors.New("пост должен содержать от 1 до 140 символов")
	ErrInvalidAuth = errors.New("недействительный токен")
)
