package di

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/academy-cloud-go/internal/config"
)

// MongoDatabase wraps the mongo database handle and its client.
type MongoDatabase struct {
	DB     *mongo.Database
	Client *mongo.Client
}

// DatabaseModule provides the MongoDB connection and index setup
var DatabaseModule = fx.Module("database",
	fx.Provide(provideMongoDatabase),
	fx.Invoke(createIndexes),
)

func provideMongoDatabase(lc fx.Lifecycle, cfg *config.DatabaseConfig, logger *zap.Logger) (*MongoDatabase, error) {
	logger.Info("Connecting to MongoDB",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
	)

	clientOpts := options.Client().ApplyURI(cfg.MongoURI())
	client, err := mongo.Connect(context.Background(), clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(context.Background(), nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing MongoDB connection")
			return client.Disconnect(ctx)
		},
	})

	return &MongoDatabase{DB: client.Database(cfg.Name), Client: client}, nil
}

func createIndexes(mongoDB *MongoDatabase, logger *zap.Logger) error {
	ctx := context.Background()
	db := mongoDB.DB

	users := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "numeric_id", Value: 1}},
		},
	}
	if _, err := db.Collection("users").Indexes().CreateMany(ctx, users); err != nil {
		logger.Error("Failed to create user indexes", zap.Error(err))
		return err
	}

	courses := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "numeric_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "ratings", Value: -1}},
		},
	}
	if _, err := db.Collection("courses").Indexes().CreateMany(ctx, courses); err != nil {
		logger.Error("Failed to create course indexes", zap.Error(err))
		return err
	}

	// The compound index backs the duplicate-purchase guard.
	orders := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "numeric_id", Value: 1}},
		},
	}
	if _, err := db.Collection("orders").Indexes().CreateMany(ctx, orders); err != nil {
		logger.Error("Failed to create order indexes", zap.Error(err))
		return err
	}

	notifications := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "numeric_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := db.Collection("notifications").Indexes().CreateMany(ctx, notifications); err != nil {
		logger.Error("Failed to create notification indexes", zap.Error(err))
		return err
	}

	logger.Info("MongoDB indexes created successfully")
	return nil
}
