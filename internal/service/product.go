package service

import (
	"context"
	"errors"
	"strings"

	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

const DefaultCurrency = "USD"

type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Sizes       []string `json:"sizes"`
	InStock     *bool    `json:"inStock"`
	Featured    bool     `json:"featured"`
}

// ProductPatch is a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Currency    *string   `json:"currency"`
	Category    *string   `json:"category"`
	Images      *[]string `json:"images"`
	Sizes       *[]string `json:"sizes"`
	InStock     *bool     `json:"inStock"`
	Featured    *bool     `json:"featured"`
}

type ProductListQuery struct {
	Category string
	Featured *bool
	Limit    int
	Skip     int
}

// ProductService defines catalogue use cases.
type ProductService interface {
	Create(ctx context.Context, in ProductInput) (*model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, q ProductListQuery) (*ListResult[model.Product], error)
	// Update merges p into the stored product. Renaming regenerates the slug.
	Update(ctx context.Context, id string, p ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, id string) error
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if in.Price <= 0 {
		return nil, invalid("price", "must be greater than zero")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	now := timeNow().UTC()
	product := &model.Product{
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Currency:    currency,
		Category:    strings.TrimSpace(in.Category),
		Images:      nonNil(in.Images),
		Sizes:       nonNil(in.Sizes),
		InStock:     inStock,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return withUniqueSlug(name, func(sl string) (*model.Product, error) {
		product.Slug = sl
		return s.repo.Create(ctx, product)
	})
}

func (s *productService) Get(ctx context.Context, id string) (*model.Product, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, ErrNotFound
	}
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, q ProductListQuery) (*ListResult[model.Product], error) {
	pq := pageQuery(q.Limit, q.Skip)
	res, err := s.repo.List(ctx, repository.ProductFilter{Category: q.Category, Featured: q.Featured}, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *productService) Update(ctx context.Context, id string, p ProductPatch) (*model.Product, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	upd := model.ProductUpdate{
		Description: p.Description,
		Price:       p.Price,
		Category:    trimmed(p.Category),
		Images:      p.Images,
		Sizes:       p.Sizes,
		InStock:     p.InStock,
		Featured:    p.Featured,
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, invalid("name", "must not be empty")
		}
		upd.Name = &name
	}
	if p.Price != nil && *p.Price <= 0 {
		return nil, invalid("price", "must be greater than zero")
	}
	if p.Currency != nil {
		c := strings.ToUpper(strings.TrimSpace(*p.Currency))
		if c == "" {
			c = DefaultCurrency
		}
		upd.Currency = &c
	}

	now := timeNow().UTC()
	var (
		out *model.Product
		err error
	)
	if upd.Name != nil {
		out, err = withUniqueSlug(*upd.Name, func(sl string) (*model.Product, error) {
			upd.Slug = &sl
			return s.repo.Update(ctx, id, upd, now)
		})
	} else {
		out, err = s.repo.Update(ctx, id, upd, now)
	}
	if errors.Is(err, ErrSlugTaken) {
		return nil, err
	}
	if err != nil {
		return nil, notFound(err)
	}
	return out, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}

func nonNil[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
