package mongo

import (
	"context"
	"fmt"
	"log"

	"storefront-service/internal/config"
	"storefront-service/internal/infra"
	repo "storefront-service/internal/repository/mongo"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials MongoDB with the configured retry budget and ensures the
// collection indexes exist.
func Connect(ctx context.Context, cfg config.Mongo, retry config.Retry) (*mongo.Database, error) {
	var client *mongo.Client
	err := infra.Retry(ctx, "mongo", retry.Attempts, retry.Backoff, func(ctx context.Context) error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, nil); err != nil {
			_ = c.Disconnect(ctx)
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	log.Printf("connected to MongoDB (database %s)", cfg.Database)

	db := client.Database(cfg.Database)
	for name, models := range repo.Indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return nil, fmt.Errorf("mongo indexes %s: %w", name, err)
		}
	}
	return db, nil
}
