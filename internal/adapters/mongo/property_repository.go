package mongo_adapter

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
)

// PropertyRepository - реализация PropertyStoragePort для MongoDB.
type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) (*PropertyRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo.Database cannot be nil")
	}
	return &PropertyRepository{coll: db.Collection(propertiesCollection)}, nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if _, err := r.coll.InsertOne(ctx, toPropertyDoc(p)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert property", err, port.Fields{
			"component":   "PropertyRepository",
			"property_id": p.ID,
		})
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	var doc propertyDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to find property by id: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	doc := toPropertyDoc(p)
	update := bson.M{"$set": bson.M{
		"title":        doc.Title,
		"description":  doc.Description,
		"price":        doc.Price,
		"location":     doc.Location,
		"propertyType": doc.PropertyType,
		"status":       doc.Status,
		"features":     doc.Features,
		"images":       doc.Images,
		"updatedAt":    doc.UpdatedAt,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) FindWithFilters(ctx context.Context, q domain.PropertyQuery) ([]domain.Property, int, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "FindWithFilters",
	})

	filter := buildFilter(q.Predicate)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		repoLogger.Error("Failed to count properties", err, nil)
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, findOptions(q))
	if err != nil {
		repoLogger.Error("Failed to query properties", err, nil)
		return nil, 0, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []propertyDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode properties: %w", err)
	}

	items := make([]domain.Property, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	repoLogger.Debug("Properties fetched.", port.Fields{"returned": len(items), "total": total})
	return items, int(total), nil
}
