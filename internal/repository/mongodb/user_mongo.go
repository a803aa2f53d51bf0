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

// UserMongo is a MongoDB implementation of repository.UserRepository.
type UserMongo struct {
	c collection[model.User]
}

// NewUserMongo creates a new UserMongo repository.
func NewUserMongo(db *mongo.Database) *UserMongo {
	return &UserMongo{c: newCollection[model.User](db, UsersCollection, "createdAt")}
}

var _ repository.UserRepository = (*UserMongo)(nil)

func (r *UserMongo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	out := *u
	out.ID = primitive.NewObjectID()
	if err := r.c.insert(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserMongo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.c.findByID(ctx, id)
}

func (r *UserMongo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.c.findOne(ctx, bson.M{"email": email})
}

func (r *UserMongo) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.User], error) {
	return r.c.list(ctx, bson.M{}, pq)
}

func (r *UserMongo) Update(ctx context.Context, id string, upd model.UserUpdate, at time.Time) (*model.User, error) {
	set := bson.M{"updatedAt": at}
	setIf(set, "firstName", upd.FirstName)
	setIf(set, "lastName", upd.LastName)
	setIf(set, "role", upd.Role)
	return r.c.updateByID(ctx, id, bson.M{"$set": set})
}

// TouchLogin records a successful login without bumping updatedAt.
func (r *UserMongo) TouchLogin(ctx context.Context, id string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.c.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"lastLoginAt": at}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserMongo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
