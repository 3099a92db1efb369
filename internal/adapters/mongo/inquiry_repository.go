package mongo_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"listing-service/internal/core/domain"
)

// InquiryRepository - реализация InquiryStoragePort для MongoDB.
type InquiryRepository struct {
	coll *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) (*InquiryRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo.Database cannot be nil")
	}
	return &InquiryRepository{coll: db.Collection(inquiriesCollection)}, nil
}

func (r *InquiryRepository) Create(ctx context.Context, inq *domain.Inquiry) error {
	if _, err := r.coll.InsertOne(ctx, toInquiryDoc(inq)); err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	return nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	var doc inquiryDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to find inquiry by id: %w", err)
	}
	inq := doc.toDomain()
	return &inq, nil
}

func (r *InquiryRepository) FindByProperties(ctx context.Context, propertyIDs []string) ([]domain.Inquiry, error) {
	if len(propertyIDs) == 0 {
		return []domain.Inquiry{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"property": bson.M{"$in": propertyIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []inquiryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode inquiries: %w", err)
	}
	items := make([]domain.Inquiry, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (r *InquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus, updatedAt time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": updatedAt.UTC(),
	}})
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) DeleteByProperty(ctx context.Context, propertyID string) (int, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"property": propertyID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete inquiries of property: %w", err)
	}
	return int(res.DeletedCount), nil
}
