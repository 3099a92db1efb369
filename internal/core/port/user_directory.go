package port

import (
	"context"

	"listing-service/internal/core/domain"
)

// UserDirectoryPort - чтение пользователей, которыми управляет сервис аутентификации.
type UserDirectoryPort interface {
	// FindSummaries возвращает имя и email для известных id; неизвестные id пропускаются.
	FindSummaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error)
}
