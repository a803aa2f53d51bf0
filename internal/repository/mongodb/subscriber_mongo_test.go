package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

const subscribersNS = "prelaunch.subscribers"

func subscriberDoc(id primitive.ObjectID, email string, status model.SubscriberStatus, source string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "email", Value: email},
		{Key: "status", Value: string(status)},
		{Key: "source", Value: source},
		{Key: "preferences", Value: bson.D{
			{Key: "earlyAccess", Value: true},
			{Key: "memberUpdates", Value: true},
			{Key: "collectionLaunches", Value: true},
		}},
		{Key: "subscribedAt", Value: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Key: "lastUpdated", Value: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func TestSubscriberMongo_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch,
			subscriberDoc(id, "a@b.com", model.SubscriberActive, "landing-page")))

		got, err := NewSubscriberMongo(mt.DB).FindByEmail(ctx, "a@b.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, "a@b.com", got.Email)
		assert.Equal(mt, model.SubscriberActive, got.Status)
		assert.True(mt, got.Preferences.CollectionLaunches)
	})

	mt.Run("not found maps to repository.ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch))

		got, err := NewSubscriberMongo(mt.DB).FindByEmail(ctx, "missing@b.com")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
		assert.Nil(mt, got)
	})

	mt.Run("command error is passed through", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "boom",
		}))

		_, err := NewSubscriberMongo(mt.DB).FindByEmail(ctx, "a@b.com")
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestSubscriberMongo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("success assigns id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		in := &model.Subscriber{Email: "a@b.com", Status: model.SubscriberActive, Source: "landing-page"}
		got, err := NewSubscriberMongo(mt.DB).Create(ctx, in)
		require.NoError(mt, err)
		assert.False(mt, got.ID.IsZero())
		assert.True(mt, in.ID.IsZero(), "input must not be mutated")
	})

	mt.Run("duplicate key maps to repository.ErrDuplicate", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: prelaunch.subscribers index: email_1",
		}))

		got, err := NewSubscriberMongo(mt.DB).Create(ctx, &model.Subscriber{Email: "a@b.com"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
		assert.Nil(mt, got)
	})
}

func TestSubscriberMongo_Reactivate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("returns the updated document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{
			Key: "value", Value: subscriberDoc(id, "a@b.com", model.SubscriberActive, "footer"),
		}))

		got, err := NewSubscriberMongo(mt.DB).Reactivate(ctx, id.Hex(), "footer", time.Now())
		require.NoError(mt, err)
		assert.Equal(mt, model.SubscriberActive, got.Status)
		assert.Equal(mt, "footer", got.Source)
	})

	mt.Run("no match maps to repository.ErrNotFound", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := NewSubscriberMongo(mt.DB).Reactivate(ctx, primitive.NewObjectID().Hex(), "footer", time.Now())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		_, err := NewSubscriberMongo(mt.DB).Reactivate(ctx, "not-an-id", "footer", time.Now())
		assert.ErrorIs(mt, err, repository.ErrInvalidID)
	})
}

func TestSubscriberMongo_AddProductInterest(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		err := NewSubscriberMongo(mt.DB).AddProductInterest(ctx, primitive.NewObjectID().Hex(), "linen-blazer", time.Now())
		assert.NoError(mt, err)
	})

	mt.Run("no match", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewSubscriberMongo(mt.DB).AddProductInterest(ctx, primitive.NewObjectID().Hex(), "linen-blazer", time.Now())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestSubscriberMongo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("count then page", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: 1}, {Key: "n", Value: int32(3)},
			}),
			mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch,
				subscriberDoc(primitive.NewObjectID(), "a@b.com", model.SubscriberActive, "landing-page"),
				subscriberDoc(primitive.NewObjectID(), "c@d.com", model.SubscriberActive, "landing-page"),
			),
		)

		res, err := NewSubscriberMongo(mt.DB).List(ctx,
			repository.SubscriberFilter{Status: model.SubscriberActive},
			repository.PageQuery{Limit: 2, Skip: 0})
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), res.Total)
		assert.Len(mt, res.Items, 2)
	})

	mt.Run("empty page is an empty slice", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch),
		)

		res, err := NewSubscriberMongo(mt.DB).List(ctx, repository.SubscriberFilter{}, repository.PageQuery{Limit: 10})
		require.NoError(mt, err)
		assert.Equal(mt, int64(0), res.Total)
		assert.NotNil(mt, res.Items)
		assert.Empty(mt, res.Items)
	})
}

func TestSubscriberMongo_CountByStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("groups by status", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, subscribersNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "active"}, {Key: "count", Value: int32(7)}},
			bson.D{{Key: "_id", Value: "unsubscribed"}, {Key: "count", Value: int32(2)}},
		))

		got, err := NewSubscriberMongo(mt.DB).CountByStatus(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), got[model.SubscriberActive])
		assert.Equal(mt, int64(2), got[model.SubscriberUnsubscribed])
	})
}

func TestSubscriberMongo_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, NewSubscriberMongo(mt.DB).Delete(ctx, primitive.NewObjectID().Hex()))
	})

	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := NewSubscriberMongo(mt.DB).Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestStatusUpdate(t *testing.T) {
	at := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	unsub := statusUpdate(bson.M{"status": model.SubscriberUnsubscribed}, model.SubscriberUnsubscribed, at)
	assert.Equal(t, at, unsub["$set"].(bson.M)["unsubscribedAt"])
	assert.NotContains(t, unsub, "$unset")

	active := statusUpdate(bson.M{"status": model.SubscriberActive}, model.SubscriberActive, at)
	assert.Contains(t, active, "$unset")
	assert.NotContains(t, active["$set"].(bson.M), "unsubscribedAt")
}
