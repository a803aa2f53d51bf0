package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

// ImageMongo is a MongoDB implementation of repository.ImageRepository.
type ImageMongo struct {
	c collection[model.Image]
}

// NewImageMongo creates a new ImageMongo repository.
func NewImageMongo(db *mongo.Database) *ImageMongo {
	return &ImageMongo{c: newCollection[model.Image](db, ImagesCollection, "createdAt")}
}

var _ repository.ImageRepository = (*ImageMongo)(nil)

// Create inserts image metadata. A zero ID is replaced with a new ObjectID.
func (r *ImageMongo) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	out := *img
	if out.ID.IsZero() {
		out.ID = primitive.NewObjectID()
	}
	if err := r.c.insert(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ImageMongo) FindByID(ctx context.Context, id string) (*model.Image, error) {
	return r.c.findByID(ctx, id)
}

func (r *ImageMongo) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Image], error) {
	return r.c.list(ctx, bson.M{}, pq)
}

func (r *ImageMongo) UpdateAlt(ctx context.Context, id string, alt string, at time.Time) (*model.Image, error) {
	return r.c.updateByID(ctx, id, bson.M{"$set": bson.M{"alt": alt, "updatedAt": at}})
}

func (r *ImageMongo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
