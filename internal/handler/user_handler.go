package handlers

import (
	"encoding/json"
	"net/http"

	"openblog/internal/middleware"
)

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller := middleware.Caller(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	user, err := h.AuthService.GetUser(r.Context(), caller)
	if err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, map[string]string{
		"username": user.Username,
		"email":    user.Email,
	}, http.StatusOK)
}

// ChangePassword меняет пароль текущего пользователя. Запись
// выбирается по паре username+email из токена - обе должны совпасть.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller := middleware.Caller(r.Context())
	email := middleware.CallerEmail(r.Context())
	if caller == "" {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req struct {
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.AuthService.ChangePassword(r.Context(), caller, email, req.NewPassword); err != nil {
		WriteError(w, err.Error(), statusFromError(err))
		return
	}

	WriteSuccess(w, map[string]string{
		"username": caller,
		"email":    email,
	}, http.StatusOK)
}
