package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ServiceSlug string             `bson:"serviceSlug" json:"serviceSlug"`
	Author      string             `bson:"author" json:"author"`
	Rating      int                `bson:"rating" json:"rating"`
	Text        string             `bson:"text" json:"text"`
	Approved    bool               `bson:"approved" json:"approved"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
