package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriberStatus is the opt-in state of a subscriber.
type SubscriberStatus string

const (
	SubscriberActive       SubscriberStatus = "active"
	SubscriberUnsubscribed SubscriberStatus = "unsubscribed"
)

// Valid reports whether s is a known status.
func (s SubscriberStatus) Valid() bool {
	return s == SubscriberActive || s == SubscriberUnsubscribed
}

// Preferences are the marketing channels a subscriber opted into.
type Preferences struct {
	EarlyAccess        bool `json:"earlyAccess" bson:"earlyAccess"`
	MemberUpdates      bool `json:"memberUpdates" bson:"memberUpdates"`
	CollectionLaunches bool `json:"collectionLaunches" bson:"collectionLaunches"`
}

// DefaultPreferences is what every new subscriber starts with.
func DefaultPreferences() Preferences {
	return Preferences{EarlyAccess: true, MemberUpdates: true, CollectionLaunches: true}
}

// Subscriber is one email address's opt-in record for marketing communications.
// Email is stored exactly as submitted and is unique across the collection.
type Subscriber struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty" swaggertype:"string"`
	Email            string             `json:"email" bson:"email"`
	Status           SubscriberStatus   `json:"status" bson:"status"`
	Source           string             `json:"source" bson:"source"`
	Preferences      Preferences        `json:"preferences" bson:"preferences"`
	ProductInterests []string           `json:"productInterests,omitempty" bson:"productInterests,omitempty"`
	SubscribedAt     time.Time          `json:"subscribedAt" bson:"subscribedAt"`
	UnsubscribedAt   *time.Time         `json:"unsubscribedAt,omitempty" bson:"unsubscribedAt,omitempty"`
	LastUpdated      time.Time          `json:"lastUpdated" bson:"lastUpdated"`
}

// IsActive reports whether the subscriber currently receives marketing email.
func (s *Subscriber) IsActive() bool {
	return s.Status == SubscriberActive
}

// SubscriberUpdate is the admin-editable subset of a subscriber. Nil fields are left untouched.
type SubscriberUpdate struct {
	Status      *SubscriberStatus
	Source      *string
	Preferences *Preferences
}

// SubscriberStats summarizes the collection for the admin dashboard.
type SubscriberStats struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	Unsubscribed int64 `json:"unsubscribed"`
}
