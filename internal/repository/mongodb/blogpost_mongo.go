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

// BlogPostMongo is a MongoDB implementation of repository.BlogPostRepository.
type BlogPostMongo struct {
	c collection[model.BlogPost]
}

// NewBlogPostMongo creates a new BlogPostMongo repository.
func NewBlogPostMongo(db *mongo.Database) *BlogPostMongo {
	return &BlogPostMongo{c: newCollection[model.BlogPost](db, BlogPostsCollection, "createdAt")}
}

var _ repository.BlogPostRepository = (*BlogPostMongo)(nil)

func (r *BlogPostMongo) Create(ctx context.Context, p *model.BlogPost) (*model.BlogPost, error) {
	out := *p
	out.ID = primitive.NewObjectID()
	if err := r.c.insert(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BlogPostMongo) FindByID(ctx context.Context, id string) (*model.BlogPost, error) {
	return r.c.findByID(ctx, id)
}

func (r *BlogPostMongo) FindBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return r.c.findOne(ctx, bson.M{"slug": slug})
}

func (r *BlogPostMongo) List(ctx context.Context, f repository.BlogPostFilter, pq repository.PageQuery) (*repository.PageResult[model.BlogPost], error) {
	filter := bson.M{}
	if f.Published != nil {
		filter["published"] = *f.Published
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	return r.c.list(ctx, filter, pq)
}

func (r *BlogPostMongo) Update(ctx context.Context, id string, upd model.BlogPostUpdate, at time.Time) (*model.BlogPost, error) {
	set := bson.M{"updatedAt": at}
	setIf(set, "title", upd.Title)
	setIf(set, "slug", upd.Slug)
	setIf(set, "excerpt", upd.Excerpt)
	setIf(set, "content", upd.Content)
	setIf(set, "html", upd.HTML)
	setIf(set, "author", upd.Author)
	setIf(set, "tags", upd.Tags)
	setIf(set, "coverImage", upd.CoverImage)
	setIf(set, "published", upd.Published)
	setIf(set, "publishedAt", upd.PublishedAt)
	return r.c.updateByID(ctx, id, bson.M{"$set": set})
}

func (r *BlogPostMongo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
