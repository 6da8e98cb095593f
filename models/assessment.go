package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment is a scored quiz submission keyed by a shareable identifier.
// Views increments on each share-link visit.
type Assessment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShareID        string             `bson:"shareId" json:"shareId"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Answers        map[string]string  `bson:"answers" json:"answers"`
	CategoryScores map[string]float64 `bson:"categoryScores" json:"categoryScores"`
	OverallScore   float64            `bson:"overallScore" json:"overallScore"`
	TierSlug       string             `bson:"tierSlug" json:"tierSlug"`
	Views          int64              `bson:"views" json:"views"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
