package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"microblog/internal/repository"
	"microblog/internal/service"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// statusFor maps service and repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSelfFollow), errors.Is(err, service.ErrInvalidPost):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, repository.ErrInvalidCredentials):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrInvalidToken), errors.Is(err, service.ErrInvalidAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError answers with the mapped status. Storage failures are
// logged and their text is not sent to the client.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		if h.Log != nil {
			h.Log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		}
		WriteError(w, "Внутренняя ошибка сервера", code)
		return
	}

	WriteError(w, err.Error(), code)
}
