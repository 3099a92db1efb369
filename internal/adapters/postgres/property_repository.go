package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// PropertyRepository - реализация PropertyStoragePort для PostgreSQL.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) (*PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRepository{pool: pool}, nil
}

func (r *PropertyRepository) logger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	l := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    method,
	})
	if len(fields) > 0 {
		l = l.WithFields(fields)
	}
	return l
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	repoLogger := r.logger(ctx, "Create", port.Fields{"property_id": p.ID, "owner_id": p.OwnerID})

	query := `INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	repoLogger.Debug("Executing query to create property.", nil)
	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price,
		p.Location.Address, p.Location.City, p.Location.State, p.Location.ZipCode,
		string(p.PropertyType), string(p.Status),
		p.Features.Bedrooms, p.Features.Bathrooms, p.Features.SquareFeet, p.Features.Parking, p.Features.Furnished,
		nonNilImages(p.Images), p.OwnerID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to create property", err, nil)
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	repoLogger := r.logger(ctx, "FindByID", port.Fields{"property_id": id})

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Debug("Property not found by ID.", nil)
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to find property by ID", err, nil)
		return nil, fmt.Errorf("failed to find property by id: %w", err)
	}
	return p, nil
}

// Update перезаписывает изменяемые поля; owner_id и created_at не трогаются
func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	repoLogger := r.logger(ctx, "Update", port.Fields{"property_id": p.ID})

	query := `UPDATE properties SET
		title = $2, description = $3, price = $4,
		address = $5, city = $6, state = $7, zip_code = $8,
		property_type = $9, status = $10,
		bedrooms = $11, bathrooms = $12, square_feet = $13, parking = $14, furnished = $15,
		images = $16, updated_at = $17
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price,
		p.Location.Address, p.Location.City, p.Location.State, p.Location.ZipCode,
		string(p.PropertyType), string(p.Status),
		p.Features.Bedrooms, p.Features.Bathrooms, p.Features.SquareFeet, p.Features.Parking, p.Features.Furnished,
		nonNilImages(p.Images), p.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to update property", err, nil)
		return fmt.Errorf("failed to update property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	repoLogger := r.logger(ctx, "Delete", port.Fields{"property_id": id})

	tag, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, nil)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) FindWithFilters(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, int, error) {
	repoLogger := r.logger(ctx, "FindWithFilters", port.Fields{"sort": string(q.Sort), "page": q.Pagination.Page, "limit": q.Pagination.Limit})

	selectQuery, args, countQuery, countArgs := buildFindQueries(q)

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		repoLogger.Error("Failed to count properties", err, port.Fields{"query": countQuery})
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	rows, err := r.pool.Query(ctx, selectQuery, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": selectQuery})
		return nil, 0, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan property row: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error during properties rows iteration: %w", err)
	}

	repoLogger.Debug("Properties fetched.", port.Fields{"returned": len(items), "total": total})
	return items, total, nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	var propertyType, status string
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price,
		&p.Location.Address, &p.Location.City, &p.Location.State, &p.Location.ZipCode,
		&propertyType, &status,
		&p.Features.Bedrooms, &p.Features.Bathrooms, &p.Features.SquareFeet, &p.Features.Parking, &p.Features.Furnished,
		&p.Images, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.PropertyType = domain.PropertyType(propertyType)
	p.Status = domain.ListingStatus(status)
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
