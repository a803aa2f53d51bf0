package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogPost is a journal entry. Content is markdown; HTML is rendered from it on every write.
type BlogPost struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" swaggertype:"string"`
	Title       string             `json:"title" bson:"title"`
	Slug        string             `json:"slug" bson:"slug"`
	Excerpt     string             `json:"excerpt" bson:"excerpt"`
	Content     string             `json:"content" bson:"content"`
	HTML        string             `json:"html" bson:"html"`
	Author      string             `json:"author" bson:"author"`
	Tags        []string           `json:"tags" bson:"tags"`
	CoverImage  string             `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	Published   bool               `json:"published" bson:"published"`
	PublishedAt *time.Time         `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// BlogPostUpdate carries the fields an update may change. Nil fields are left untouched.
type BlogPostUpdate struct {
	Title       *string
	Slug        *string
	Excerpt     *string
	Content     *string
	HTML        *string
	Author      *string
	Tags        *[]string
	CoverImage  *string
	Published   *bool
	PublishedAt *time.Time
}
