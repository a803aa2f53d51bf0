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

// SubscriberMongo is a MongoDB implementation of repository.SubscriberRepository.
type SubscriberMongo struct {
	c collection[model.Subscriber]
}

// NewSubscriberMongo creates a new SubscriberMongo repository.
func NewSubscriberMongo(db *mongo.Database) *SubscriberMongo {
	return &SubscriberMongo{c: newCollection[model.Subscriber](db, SubscribersCollection, "subscribedAt")}
}

var _ repository.SubscriberRepository = (*SubscriberMongo)(nil)

// FindByEmail matches the stored email byte for byte.
func (r *SubscriberMongo) FindByEmail(ctx context.Context, email string) (*model.Subscriber, error) {
	return r.c.findOne(ctx, bson.M{"email": email})
}

func (r *SubscriberMongo) FindByID(ctx context.Context, id string) (*model.Subscriber, error) {
	return r.c.findByID(ctx, id)
}

// Create inserts sub with a freshly generated ID.
func (r *SubscriberMongo) Create(ctx context.Context, sub *model.Subscriber) (*model.Subscriber, error) {
	out := *sub
	out.ID = primitive.NewObjectID()
	if err := r.c.insert(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SubscriberMongo) Reactivate(ctx context.Context, id string, source string, at time.Time) (*model.Subscriber, error) {
	return r.c.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"status":       model.SubscriberActive,
			"subscribedAt": at,
			"lastUpdated":  at,
			"source":       source,
		},
		"$unset": bson.M{"unsubscribedAt": ""},
	})
}

func (r *SubscriberMongo) AddProductInterest(ctx context.Context, id string, interest string, at time.Time) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.c.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$addToSet": bson.M{"productInterests": interest},
		"$set":      bson.M{"lastUpdated": at},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SubscriberMongo) SetStatusByEmail(ctx context.Context, email string, status model.SubscriberStatus, at time.Time) (*model.Subscriber, error) {
	set := bson.M{"status": status, "lastUpdated": at}
	return r.c.updateOne(ctx, bson.M{"email": email}, statusUpdate(set, status, at))
}

func (r *SubscriberMongo) Update(ctx context.Context, id string, upd model.SubscriberUpdate, at time.Time) (*model.Subscriber, error) {
	set := bson.M{"lastUpdated": at}
	setIf(set, "source", upd.Source)
	setIf(set, "preferences", upd.Preferences)
	if upd.Status == nil {
		return r.c.updateByID(ctx, id, bson.M{"$set": set})
	}
	set["status"] = *upd.Status
	return r.c.updateByID(ctx, id, statusUpdate(set, *upd.Status, at))
}

// statusUpdate keeps unsubscribedAt consistent with the target status.
func statusUpdate(set bson.M, status model.SubscriberStatus, at time.Time) bson.M {
	if status == model.SubscriberUnsubscribed {
		set["unsubscribedAt"] = at
		return bson.M{"$set": set}
	}
	return bson.M{"$set": set, "$unset": bson.M{"unsubscribedAt": ""}}
}

func (r *SubscriberMongo) List(ctx context.Context, f repository.SubscriberFilter, pq repository.PageQuery) (*repository.PageResult[model.Subscriber], error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Source != "" {
		filter["source"] = f.Source
	}
	return r.c.list(ctx, filter, pq)
}

func (r *SubscriberMongo) CountByStatus(ctx context.Context) (map[model.SubscriberStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := r.c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status model.SubscriberStatus `bson:"_id"`
		Count  int64                  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[model.SubscriberStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *SubscriberMongo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
