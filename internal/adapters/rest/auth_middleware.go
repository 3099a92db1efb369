package rest

import (
	"context"
	"net/http"
	"strings"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

type contextKey string

const principalKey = contextKey("principal")

// AuthMiddleware извлекает субъекта из Bearer-токена.
// Без заголовка запрос идет дальше анонимно, решение принимает Guard.
// Кривой или невалидный токен сразу дает 401.
func AuthMiddleware(tokens port.TokenServicePort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			logger := contextkeys.LoggerFromContext(r.Context())

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			tokenString = strings.TrimSpace(tokenString)
			if !ok || tokenString == "" {
				logger.Warn("Malformed Authorization header", nil)
				WriteJSONError(w, http.StatusUnauthorized, "Invalid token format")
				return
			}

			principal, err := tokens.ValidateToken(r.Context(), tokenString)
			if err != nil {
				WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, *principal)
			ctx = contextkeys.ContextWithLogger(ctx, logger.WithFields(port.Fields{"user_id": principal.UserID}))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFromRequest возвращает анонимного субъекта, если middleware его не положил
func principalFromRequest(r *http.Request) domain.Principal {
	if p, ok := r.Context().Value(principalKey).(domain.Principal); ok {
		return p
	}
	return domain.Anonymous
}
