package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

const (
	inquiryColumns      = `id, property_id, name, email, phone, message, status, created_at, updated_at`
	foreignKeyViolation = "23503"
)

// InquiryRepository - реализация InquiryStoragePort для PostgreSQL.
type InquiryRepository struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(pool *pgxpool.Pool) (*InquiryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &InquiryRepository{pool: pool}, nil
}

func (r *InquiryRepository) Create(ctx context.Context, inq *domain.Inquiry) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "InquiryRepository",
		"method":      "Create",
		"inquiry_id":  inq.ID,
		"property_id": inq.PropertyID,
	})

	query := `INSERT INTO inquiries (` + inquiryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		inq.ID, inq.PropertyID, inq.Name, inq.Email, inq.Phone, inq.Message,
		string(inq.Status), inq.CreatedAt, inq.UpdatedAt,
	)
	if err != nil {
		// объявление удалили между проверкой и вставкой
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			repoLogger.Warn("Inquiry references a missing property.", nil)
			return domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to create inquiry", err, nil)
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE id = $1`

	inq, err := scanInquiry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInquiryNotFound
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find inquiry by ID", err, port.Fields{
			"component":  "InquiryRepository",
			"inquiry_id": id,
		})
		return nil, fmt.Errorf("failed to find inquiry by id: %w", err)
	}
	return inq, nil
}

func (r *InquiryRepository) FindByProperties(ctx context.Context, propertyIDs []string) ([]domain.Inquiry, error) {
	if len(propertyIDs) == 0 {
		return []domain.Inquiry{}, nil
	}

	query := `SELECT ` + inquiryColumns + ` FROM inquiries
		WHERE property_id = ANY($1)
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Inquiry, 0)
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry row: %w", err)
		}
		items = append(items, *inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during inquiries rows iteration: %w", err)
	}
	return items, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus, updatedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE inquiries SET status = $2, updated_at = $3 WHERE id = $1`, id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

// DeleteByProperty обычно ничего не находит: внешний ключ уже удалил строки каскадом
func (r *InquiryRepository) DeleteByProperty(ctx context.Context, propertyID string) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inquiries WHERE property_id = $1`, propertyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete inquiries of property: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanInquiry(row pgx.Row) (*domain.Inquiry, error) {
	var inq domain.Inquiry
	var status string
	if err := row.Scan(&inq.ID, &inq.PropertyID, &inq.Name, &inq.Email, &inq.Phone, &inq.Message,
		&status, &inq.CreatedAt, &inq.UpdatedAt); err != nil {
		return nil, err
	}
	inq.Status = domain.InquiryStatus(status)
	return &inq, nil
}
