package middleware

import (
	"context"
	"net/http"
	"strings"

	"passauth/internal/logger"
	"passauth/internal/repository"
	"passauth/internal/utils"

	"go.uber.org/zap"
)

// SessionCookieName — имя куки с подписанным токеном сессии.
const SessionCookieName = "session"

// SessionAuth проверяет подпись токена сессии и её наличие в реестре:
// после logout подпись ещё валидна, но реестр её уже не знает.
func SessionAuth(secret string, sessions *repository.SessionRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			tokenString := sessionTokenFromRequest(r)
			if tokenString == "" {
				logger.WithCtx(r.Context()).Warn("SessionAuth: отсутствует токен сессии")
				http.Error(w, "Требуется вход", http.StatusUnauthorized)
				return
			}

			userID, sid, err := utils.ParseSessionToken(secret, tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("SessionAuth: неверный или просроченный токен сессии", zap.Error(err))
				http.Error(w, "Неверная или просроченная сессия", http.StatusUnauthorized)
				return
			}

			valid, err := sessions.IsSessionValid(r.Context(), sid, userID)
			if err != nil || !valid {
				logger.WithCtx(r.Context()).Warn("SessionAuth: сессия не найдена в реестре", zap.String("user_id", userID))
				http.Error(w, "Неверная или просроченная сессия", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, userID)
			ctx = context.WithValue(ctx, ContextSessionID, sid)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
