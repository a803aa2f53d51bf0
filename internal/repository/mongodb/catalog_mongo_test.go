package mongodb

import (
	"context"
	"errors"
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

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))

	other := errors.New("socket closed")
	assert.Equal(t, other, mapErr(other))
}

func TestObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	got, err := objectID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = objectID("123")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestSetIf(t *testing.T) {
	name := "Linen Blazer"
	var missing *float64

	set := bson.M{}
	setIf(set, "name", &name)
	setIf(set, "price", missing)

	assert.Equal(t, bson.M{"name": "Linen Blazer"}, set)
}

func TestProductMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "prelaunch.products"

	mt.Run("find by slug", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Linen Blazer"},
			{Key: "slug", Value: "linen-blazer"},
			{Key: "price", Value: 420.0},
			{Key: "sizes", Value: bson.A{"S", "M"}},
		}))

		got, err := NewProductMongo(mt.DB).FindBySlug(ctx, "linen-blazer")
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
		assert.Equal(mt, 420.0, got.Price)
		assert.Equal(mt, []string{"S", "M"}, got.Sizes)
	})

	mt.Run("duplicate slug", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error index: slug_1",
		}))

		_, err := NewProductMongo(mt.DB).Create(ctx, &model.Product{Name: "Linen Blazer", Slug: "linen-blazer"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})

	mt.Run("update returns post-image", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Linen Blazer"},
			{Key: "inStock", Value: false},
		}}))

		inStock := false
		got, err := NewProductMongo(mt.DB).Update(ctx, id.Hex(), model.ProductUpdate{InStock: &inStock}, time.Now())
		require.NoError(mt, err)
		assert.False(mt, got.InStock)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := NewProductMongo(mt.DB).Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestUserMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "prelaunch.users"

	mt.Run("find by email keeps hash", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "ada@example.com"},
			{Key: "passwordHash", Value: "$2a$10$hash"},
			{Key: "firstName", Value: "Ada"},
			{Key: "lastName", Value: "Lovelace"},
		}))

		got, err := NewUserMongo(mt.DB).FindByEmail(ctx, "ada@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, "$2a$10$hash", got.PasswordHash)
		assert.Equal(mt, "Ada Lovelace", got.FullName())
	})

	mt.Run("touch login on missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := NewUserMongo(mt.DB).TouchLogin(ctx, primitive.NewObjectID().Hex(), time.Now())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestBlogPostMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := "prelaunch.blogposts"

	mt.Run("list published", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: 1}, {Key: "n", Value: int32(1)},
			}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "title", Value: "Behind the seams"},
				{Key: "slug", Value: "behind-the-seams"},
				{Key: "published", Value: true},
				{Key: "tags", Value: bson.A{"atelier"}},
			}),
		)

		published := true
		res, err := NewBlogPostMongo(mt.DB).List(ctx,
			repository.BlogPostFilter{Published: &published, Tag: "atelier"},
			repository.PageQuery{Limit: 10})
		require.NoError(mt, err)
		require.Len(mt, res.Items, 1)
		assert.Equal(mt, "behind-the-seams", res.Items[0].Slug)
		assert.Equal(mt, int64(1), res.Total)
	})

	mt.Run("find by slug missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		_, err := NewBlogPostMongo(mt.DB).FindBySlug(ctx, "nope")
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestImageMongo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create keeps preset id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		id := primitive.NewObjectID()
		got, err := NewImageMongo(mt.DB).Create(ctx, &model.Image{ID: id, Filename: id.Hex() + ".png"})
		require.NoError(mt, err)
		assert.Equal(mt, id, got.ID)
	})

	mt.Run("update alt", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "alt", Value: "Model wearing the blazer"},
		}}))

		got, err := NewImageMongo(mt.DB).UpdateAlt(ctx, id.Hex(), "Model wearing the blazer", time.Now())
		require.NoError(mt, err)
		assert.Equal(mt, "Model wearing the blazer", got.Alt)
	})
}
