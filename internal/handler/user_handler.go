package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"microblog/internal/models"
	"microblog/internal/reqctx"
	"microblog/internal/repository"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	AboutMe   string    `json:"aboutMe"`
	AvatarURL string    `json:"avatarUrl"`
	LastSeen  time.Time `json:"lastSeen"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		AboutMe:   user.AboutMe,
		AvatarURL: user.AvatarURL,
		LastSeen:  user.LastSeen,
	}
}

type ProfileResponse struct {
	User        UserResponse `json:"user"`
	Followers   int          `json:"followers"`
	Following   int          `json:"following"`
	IsFollowing bool         `json:"isFollowing"`
	IsSelf      bool         `json:"isSelf"`
	Posts       *models.Page `json:"posts"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"required,username"`
	AboutMe  string `json:"aboutMe" validate:"max=140"`
}

// currentUser answers 401 when the request carries no authenticated user.
func currentUser(w http.ResponseWriter, r *http.Request) (reqctx.User, bool) {
	user, ok := reqctx.UserFrom(r.Context())
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
	}
	return user, ok
}

// pageParam reads ?page=N; anything unparsable means the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetByID(r.Context(), me.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newUserResponse(user), http.StatusOK)
}

func (h *Handlers) UpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		if invalidUsername(err) {
			WriteError(w, usernameRule, http.StatusBadRequest)
			return
		}
		WriteError(w, "Поле aboutMe не длиннее 140 символов", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), repository.UpdateProfileRequest{
		UserID:   me.ID,
		Username: req.Username,
		AboutMe:  req.AboutMe,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			WriteError(w, "Имя пользователя уже занято", http.StatusConflict)
			return
		}
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newUserResponse(user), http.StatusOK)
}

func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		WriteError(w, "Не удалось получить файл", http.StatusBadRequest)
		return
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}

	if !allowedTypes[header.Header.Get("Content-Type")] {
		WriteError(w, "Неподдерживаемый тип файла. Разрешены: JPEG, PNG, GIF, WebP", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.UploadAvatar(r.Context(), me.ID, header.Filename, file, header.Size)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, newUserResponse(user), http.StatusOK)
}

// GetUserProfile shows a user with follow counts, whether the caller follows
// them, and one page of their posts.
func (h *Handlers) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	counts, err := h.FollowService.Counts(r.Context(), user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	following, err := h.FollowService.IsFollowing(r.Context(), me.ID, user.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	posts, err := h.FeedService.UserPosts(r.Context(), user.ID, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := ProfileResponse{
		User:        newUserResponse(user),
		Followers:   counts.Followers,
		Following:   counts.Following,
		IsFollowing: following,
		IsSelf:      me.ID == user.ID,
		Posts:       posts,
	}
	if !resp.IsSelf {
		resp.User.Email = ""
	}

	WriteSuccess(w, resp, http.StatusOK)
}
