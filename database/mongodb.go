package database

import (
	"context"
	"time"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var DB *mongo.Database

func ConnectDB() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.C.MongoURI))
	if err != nil {
		return err
	}

	// Ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		return err
	}

	DB = client.Database(config.C.MongoDatabase)
	logger.Log.Info("Connected to MongoDB")

	return EnsureIndexes(ctx)
}

// EnsureIndexes creates the unique indexes the handlers rely on. The orders
// index on checkoutSessionId is what makes webhook replays idempotent.
func EnsureIndexes(ctx context.Context) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"carts", mongo.IndexModel{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"orders", mongo.IndexModel{
			Keys:    bson.D{{Key: "checkoutSessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"assessments", mongo.IndexModel{
			Keys:    bson.D{{Key: "shareId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"discount_leads", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"services", mongo.IndexModel{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
	}

	for _, idx := range indexes {
		if _, err := DB.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return err
		}
	}
	return nil
}
