package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue item shown in product previews and the cart.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" swaggertype:"string"`
	Name        string             `json:"name" bson:"name"`
	Slug        string             `json:"slug" bson:"slug"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Currency    string             `json:"currency" bson:"currency"`
	Category    string             `json:"category" bson:"category"`
	Images      []string           `json:"images" bson:"images"`
	Sizes       []string           `json:"sizes" bson:"sizes"`
	InStock     bool               `json:"inStock" bson:"inStock"`
	Featured    bool               `json:"featured" bson:"featured"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductUpdate carries the fields an update may change. Nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Slug        *string
	Description *string
	Price       *float64
	Currency    *string
	Category    *string
	Images      *[]string
	Sizes       *[]string
	InStock     *bool
	Featured    *bool
}
