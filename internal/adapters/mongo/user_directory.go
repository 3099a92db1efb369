package mongo_adapter

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"listing-service/internal/core/domain"
)

// UserDirectory читает коллекцию users сервиса аутентификации
type UserDirectory struct {
	coll *mongo.Collection
}

func NewUserDirectory(db *mongo.Database) (*UserDirectory, error) {
	if db == nil {
		return nil, fmt.Errorf("mongo.Database cannot be nil")
	}
	return &UserDirectory{coll: db.Collection(usersCollection)}, nil
}

func (d *UserDirectory) FindSummaries(ctx context.Context, ids []string) (map[string]domain.OwnerSummary, error) {
	out := make(map[string]domain.OwnerSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cursor, err := d.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	for _, u := range docs {
		out[u.ID] = domain.OwnerSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	return out, nil
}
