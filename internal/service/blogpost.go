package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"prelaunch/internal/model"
	"prelaunch/internal/repository"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in the markdown source is omitted.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

func renderMarkdown(md string) (string, error) {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

type BlogPostInput struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
	Published  bool     `json:"published"`
}

// BlogPostPatch is a partial post update. Nil fields are left untouched.
type BlogPostPatch struct {
	Title      *string   `json:"title"`
	Excerpt    *string   `json:"excerpt"`
	Content    *string   `json:"content"`
	Author     *string   `json:"author"`
	Tags       *[]string `json:"tags"`
	CoverImage *string   `json:"coverImage"`
	Published  *bool     `json:"published"`
}

type BlogListQuery struct {
	Published *bool
	Tag       string
	Limit     int
	Skip      int
}

// BlogService defines journal use cases. The Published* methods never return drafts.
type BlogService interface {
	Create(ctx context.Context, in BlogPostInput) (*model.BlogPost, error)
	Get(ctx context.Context, id string) (*model.BlogPost, error)
	List(ctx context.Context, q BlogListQuery) (*ListResult[model.BlogPost], error)
	Update(ctx context.Context, id string, p BlogPostPatch) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error

	ListPublished(ctx context.Context, tag string, limit, skip int) (*ListResult[model.BlogPost], error)
	GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
}

type blogService struct {
	repo repository.BlogPostRepository
}

func NewBlogService(repo repository.BlogPostRepository) BlogService {
	return &blogService{repo: repo}
}

func (s *blogService) Create(ctx context.Context, in BlogPostInput) (*model.BlogPost, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, invalid("content", "is required")
	}
	html, err := renderMarkdown(in.Content)
	if err != nil {
		return nil, err
	}

	now := timeNow().UTC()
	post := &model.BlogPost{
		Title:      title,
		Excerpt:    strings.TrimSpace(in.Excerpt),
		Content:    in.Content,
		HTML:       html,
		Author:     strings.TrimSpace(in.Author),
		Tags:       nonNil(in.Tags),
		CoverImage: strings.TrimSpace(in.CoverImage),
		Published:  in.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Published {
		post.PublishedAt = &now
	}

	return withUniqueSlug(title, func(sl string) (*model.BlogPost, error) {
		post.Slug = sl
		return s.repo.Create(ctx, post)
	})
}

func (s *blogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *blogService) List(ctx context.Context, q BlogListQuery) (*ListResult[model.BlogPost], error) {
	pq := pageQuery(q.Limit, q.Skip)
	res, err := s.repo.List(ctx, repository.BlogPostFilter{Published: q.Published, Tag: q.Tag}, pq)
	if err != nil {
		return nil, err
	}
	return listResult(res, pq), nil
}

func (s *blogService) ListPublished(ctx context.Context, tag string, limit, skip int) (*ListResult[model.BlogPost], error) {
	published := true
	return s.List(ctx, BlogListQuery{Published: &published, Tag: tag, Limit: limit, Skip: skip})
}

func (s *blogService) GetPublishedBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, ErrNotFound
	}
	p, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *blogService) Update(ctx context.Context, id string, p BlogPostPatch) (*model.BlogPost, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	upd := model.BlogPostUpdate{
		Excerpt:    trimmed(p.Excerpt),
		Author:     trimmed(p.Author),
		Tags:       p.Tags,
		CoverImage: trimmed(p.CoverImage),
		Published:  p.Published,
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, invalid("title", "must not be empty")
		}
		upd.Title = &title
	}
	if p.Content != nil {
		if strings.TrimSpace(*p.Content) == "" {
			return nil, invalid("content", "must not be empty")
		}
		html, err := renderMarkdown(*p.Content)
		if err != nil {
			return nil, err
		}
		upd.Content, upd.HTML = p.Content, &html
	}

	now := timeNow().UTC()
	if p.Published != nil && *p.Published && current.PublishedAt == nil {
		upd.PublishedAt = &now
	}

	var out *model.BlogPost
	if upd.Title != nil {
		out, err = withUniqueSlug(*upd.Title, func(sl string) (*model.BlogPost, error) {
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

func (s *blogService) Delete(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return notFound(s.repo.Delete(ctx, id))
}
