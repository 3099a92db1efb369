package postgres_adapter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/core/domain"
)

// UserDirectory читает таблицу users, которую заполняет сервис аутентификации
type UserDirectory struct {
	pool *pgxpool.Pool
}

func NewUserDirectory(pool *pgxpool.Pool) (*UserDirectory, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &UserDirectory{pool: pool}, nil
}

func (d *UserDirectory) FindSummaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error) {
	out := make(map[string]domain.OwnerSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := d.pool.Query(ctx, `SELECT id, name, email FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.OwnerSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}
