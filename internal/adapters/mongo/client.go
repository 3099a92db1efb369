package mongo_adapter

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	propertiesCollection = "properties"
	inquiriesCollection  = "inquiries"
	contactsCollection   = "contacts"
	usersCollection      = "users"
)

type Config struct {
	URI      string
	Database string
}

// NewClient подключается к MongoDB и проверяет соединение пингом
func NewClient(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("MONGO_URI configuration is required")
	}
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("MONGO_DATABASE configuration is required")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes создает индексы под фильтры, сортировки и каскадное удаление
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		propertiesCollection: {
			{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}},
			{Keys: bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "propertyType", Value: 1}, {Key: "status", Value: 1}}},
		},
		inquiriesCollection: {
			{Keys: bson.D{{Key: "property", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		contactsCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}
	return nil
}
