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

// ProductMongo is a MongoDB implementation of repository.ProductRepository.
type ProductMongo struct {
	c collection[model.Product]
}

// NewProductMongo creates a new ProductMongo repository.
func NewProductMongo(db *mongo.Database) *ProductMongo {
	return &ProductMongo{c: newCollection[model.Product](db, ProductsCollection, "createdAt")}
}

var _ repository.ProductRepository = (*ProductMongo)(nil)

func (r *ProductMongo) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	out := *p
	out.ID = primitive.NewObjectID()
	if err := r.c.insert(ctx, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductMongo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.c.findByID(ctx, id)
}

func (r *ProductMongo) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	return r.c.findOne(ctx, bson.M{"slug": slug})
}

func (r *ProductMongo) List(ctx context.Context, f repository.ProductFilter, pq repository.PageQuery) (*repository.PageResult[model.Product], error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Featured != nil {
		filter["featured"] = *f.Featured
	}
	return r.c.list(ctx, filter, pq)
}

func (r *ProductMongo) Update(ctx context.Context, id string, upd model.ProductUpdate, at time.Time) (*model.Product, error) {
	set := bson.M{"updatedAt": at}
	setIf(set, "name", upd.Name)
	setIf(set, "slug", upd.Slug)
	setIf(set, "description", upd.Description)
	setIf(set, "price", upd.Price)
	setIf(set, "currency", upd.Currency)
	setIf(set, "category", upd.Category)
	setIf(set, "images", upd.Images)
	setIf(set, "sizes", upd.Sizes)
	setIf(set, "inStock", upd.InStock)
	setIf(set, "featured", upd.Featured)
	return r.c.updateByID(ctx, id, bson.M{"$set": set})
}

func (r *ProductMongo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
