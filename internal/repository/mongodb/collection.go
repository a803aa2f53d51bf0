// Package mongodb implements the repository interfaces on top of the official MongoDB driver.
// It uses parameterized filters only and contains no business logic.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prelaunch/internal/repository"
)

// Collection names shared with the index bootstrap.
const (
	SubscribersCollection = "subscribers"
	ProductsCollection    = "products"
	UsersCollection       = "users"
	ImagesCollection      = "images"
	BlogPostsCollection   = "blogposts"
)

// collection wraps a driver collection with the typed find/insert/update/delete
// operations every repository in this package shares.
type collection[T any] struct {
	coll *mongo.Collection
	// sortField orders listings newest first, ties broken by _id.
	sortField string
}

func newCollection[T any](db *mongo.Database, name, sortField string) collection[T] {
	return collection[T]{coll: db.Collection(name), sortField: sortField}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repository.ErrInvalidID
	}
	return oid, nil
}

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}

func (c collection[T]) insert(ctx context.Context, doc *T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	return nil
}

func (c collection[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var out T
	if err := c.coll.FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (c collection[T]) findByID(ctx context.Context, id string) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return c.findOne(ctx, bson.M{"_id": oid})
}

// list returns one page of documents matching filter and the total match count.
func (c collection[T]) list(ctx context.Context, filter bson.M, pq repository.PageQuery) (*repository.PageResult[T], error) {
	total, err := c.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: c.sortField, Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(pq.Skip)).
		SetLimit(int64(pq.Limit))

	cur, err := c.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]T, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}

	return &repository.PageResult[T]{Items: items, Total: total}, nil
}

// updateOne applies update to the first document matching filter and returns it post-update.
func (c collection[T]) updateOne(ctx context.Context, filter bson.M, update bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out T
	if err := c.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (c collection[T]) updateByID(ctx context.Context, id string, update bson.M) (*T, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return c.updateOne(ctx, bson.M{"_id": oid}, update)
}

// deleteByID removes a single document. Returns repository.ErrNotFound if nothing matched.
func (c collection[T]) deleteByID(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// setIf copies *v into set under key when v is non-nil.
func setIf[V any](set bson.M, key string, v *V) {
	if v != nil {
		set[key] = *v
	}
}
