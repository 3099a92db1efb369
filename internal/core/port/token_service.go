package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// TokenServicePort - проверка токена доступа, выданного сервисом аутентификации.
type TokenServicePort interface {
	ValidateToken(ctx context.Context, token string) (*domain.Principal, error)
}
