package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiscountLead is an email/phone capture tied to a promotional code. A
// shared code is only valid while a lead exists for it.
type DiscountLead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Code      string             `bson:"code" json:"code"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
