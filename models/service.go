package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServiceOption is a configurable add-on on a catalog service.
type ServiceOption struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

// Service is the Mongo snapshot of a CMS catalog entry, refreshed by the
// pricing-sync endpoint.
type Service struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug         string             `bson:"slug" json:"slug"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	BasePrice    float64            `bson:"basePrice" json:"basePrice"`
	Options      []ServiceOption    `bson:"options" json:"options"`
	Subscription bool               `bson:"subscription" json:"subscription"`
	Active       bool               `bson:"active" json:"active"`
	SyncedAt     time.Time          `bson:"syncedAt" json:"syncedAt"`
}
