package infra

import (
	"context"
	"fmt"

	"github.com/rocketstore/customers-api/internal/config"
	"github.com/rocketstore/customers-api/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongodb establishes connection to MongoDB and ensures customer indexes
func Mongodb(ctx context.Context, cfg config.MongoCfg) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d/?maxPoolSize=%d", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.MaxPoolSize)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	if err := repository.EnsureMongoCustomerIndexes(ctx, client); err != nil {
		return nil, fmt.Errorf("failed to ensure customer indexes - %w", err)
	}
	return client, nil
}
