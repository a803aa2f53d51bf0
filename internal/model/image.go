package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Image is the metadata of an uploaded file kept in object storage.
// This is a pure metadata record; the bytes live under StoragePath in the bucket.
type Image struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty" swaggertype:"string"`
	Filename     string             `json:"filename" bson:"filename"`
	OriginalName string             `json:"originalName" bson:"originalName"`
	StoragePath  string             `json:"storagePath" bson:"storagePath"`
	URL          string             `json:"url,omitempty" bson:"url,omitempty"`
	ContentType  string             `json:"contentType" bson:"contentType"`
	Size         int64              `json:"size" bson:"size"`
	Width        int                `json:"width" bson:"width"`
	Height       int                `json:"height" bson:"height"`
	Alt          string             `json:"alt" bson:"alt"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}
