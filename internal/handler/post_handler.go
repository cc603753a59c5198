package handlers

import (
	"encoding/json"
	"net/http"

	"microblog/internal/repository"
)

type CreatePostRequest struct {
	Body string `json:"body" validate:"required"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Отсутствует текст поста", http.StatusBadRequest)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), repository.CreatePostRequest{
		UserID: me.ID,
		Body:   req.Body,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, post, http.StatusCreated)
}

// GetFeed is the home feed of the caller.
func (h *Handlers) GetFeed(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := h.FeedService.FollowedPosts(r.Context(), me.ID, pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, page, http.StatusOK)
}

func (h *Handlers) GetExplore(w http.ResponseWriter, r *http.Request) {
	page, err := h.FeedService.Explore(r.Context(), pageParam(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, page, http.StatusOK)
}
