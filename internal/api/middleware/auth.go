package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nash87/parkhub-sub000/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"
)

const msgMissingUserID = "отсутствует заголовок X-User-ID"

// Auth извлекает идентификатор и роль пользователя из заголовков.
// Запросы без X-User-ID отклоняются. Роль по умолчанию - user
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(headerUserID)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": msgMissingUserID})
			return
		}

		role := r.Header.Get(headerRole)
		if role != domain.RoleAdmin {
			role = domain.RoleUser
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя из контекста запроса
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// Role возвращает роль пользователя из контекста запроса
func Role(ctx context.Context) string {
	if v, ok := ctx.Value(roleKey).(string); ok {
		return v
	}
	return domain.RoleUser
}
