package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

type FollowResponse struct {
	Message     string `json:"message"`
	Username    string `json:"username"`
	IsFollowing bool   `json:"isFollowing"`
}

func (h *Handlers) Follow(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	target, err := h.FollowService.FollowUsername(r.Context(), me.ID, mux.Vars(r)["username"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, FollowResponse{
		Message:     fmt.Sprintf("Вы подписаны на %s", target.Username),
		Username:    target.Username,
		IsFollowing: true,
	}, http.StatusOK)
}

func (h *Handlers) Unfollow(w http.ResponseWriter, r *http.Request) {
	me, ok := currentUser(w, r)
	if !ok {
		return
	}

	target, err := h.FollowService.UnfollowUsername(r.Context(), me.ID, mux.Vars(r)["username"])
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	WriteSuccess(w, FollowResponse{
		Message:     fmt.Sprintf("Вы отписались от %s", target.Username),
		Username:    target.Username,
		IsFollowing: false,
	}, http.StatusOK)
}
