package db

import (
	"context"
	"fmt"
	"time"

	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names of the document backend.
const (
	CollectionMainCategories = "main_categories"
	CollectionSubCategories  = "sub_categories"
	CollectionProducts       = "products"
	CollectionBanners        = "banners"
	CollectionHandpicked     = "handpicked_items"
)

var (
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
)

// ConnectMongo opens and pings the document store.
func ConnectMongo(cfg *config.DatabaseConfig) error {
	logger.Info("Connecting to MongoDB", map[string]interface{}{
		"database": cfg.MongoDatabase,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to connect to MongoDB (ping failed): %w", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDatabase)

	logger.Info("MongoDB connection established successfully", nil)
	return nil
}

// GetMongo returns the connected database.
func GetMongo() *mongo.Database {
	return mongoDB
}

// EnsureMongoIndexes creates the unique indexes that back duplicate
// detection. It runs once at startup.
func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionMainCategories: {
			{Keys: bson.D{{Key: "name_key", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionSubCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}, {Key: "main_category", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionProducts: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "category", Value: 1}}},
		},
		CollectionBanners: {
			{Keys: bson.D{{Key: "order", Value: 1}}},
		},
		CollectionHandpicked: {
			{Keys: bson.D{{Key: "slot", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := database.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("Failed to create MongoDB indexes", err, map[string]interface{}{
				"collection": collection,
			})
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	logger.Info("MongoDB indexes ensured", map[string]interface{}{
		"collections": len(indexes),
	})
	return nil
}

// DisconnectMongo closes the document store connection.
func DisconnectMongo() error {
	if mongoClient == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return mongoClient.Disconnect(ctx)
}
