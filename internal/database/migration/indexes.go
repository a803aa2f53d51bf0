// Package migration bootstraps the MongoDB indexes the repositories rely on.
package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prelaunch/internal/repository/mongodb"
)

type indexStep struct {
	Name       string
	Collection string
	Model      mongo.IndexModel
}

func unique(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name).SetUnique(true)}
}

func plain(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

// steps are applied in order. Recreating an identical index is a no-op on the server.
var steps = []indexStep{
	{
		Name:       "subscribers_email_unique",
		Collection: mongodb.SubscribersCollection,
		Model:      unique("email_unique", bson.D{{Key: "email", Value: 1}}),
	},
	{
		Name:       "subscribers_status_subscribed_at",
		Collection: mongodb.SubscribersCollection,
		Model:      plain("status_subscribedAt", bson.D{{Key: "status", Value: 1}, {Key: "subscribedAt", Value: -1}}),
	},
	{
		Name:       "users_email_unique",
		Collection: mongodb.UsersCollection,
		Model:      unique("email_unique", bson.D{{Key: "email", Value: 1}}),
	},
	{
		Name:       "products_slug_unique",
		Collection: mongodb.ProductsCollection,
		Model:      unique("slug_unique", bson.D{{Key: "slug", Value: 1}}),
	},
	{
		Name:       "products_category",
		Collection: mongodb.ProductsCollection,
		Model:      plain("category_createdAt", bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}),
	},
	{
		Name:       "blogposts_slug_unique",
		Collection: mongodb.BlogPostsCollection,
		Model:      unique("slug_unique", bson.D{{Key: "slug", Value: 1}}),
	},
	{
		Name:       "blogposts_published",
		Collection: mongodb.BlogPostsCollection,
		Model:      plain("published_createdAt", bson.D{{Key: "published", Value: 1}, {Key: "createdAt", Value: -1}}),
	},
	{
		Name:       "images_created_at",
		Collection: mongodb.ImagesCollection,
		Model:      plain("createdAt", bson.D{{Key: "createdAt", Value: -1}}),
	},
}

// EnsureIndexes creates every index the application needs. It is safe to run on each start.
func EnsureIndexes(ctx context.Context, db *mongo.Database, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.Info("db_index_check", "event", "db_index_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.Collection(step.Collection).Indexes().CreateOne(ctx, step.Model); err != nil {
			log.Error("db_index_check",
				"event", "db_index_failed",
				"status", "error",
				"index_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("index step %s failed: %w", step.Name, err)
		}

		log.Debug("db_index_check",
			"event", "db_index_step",
			"status", "success",
			"index_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.Info("db_index_check",
		"event", "db_index_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
