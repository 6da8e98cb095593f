package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID               primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Name             string                 `bson:"name" json:"name"`
	Email            string                 `bson:"email" json:"email"`
	Password         string                 `bson:"password,omitempty" json:"-"`
	PhoneNumber      string                 `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Provider         string                 `bson:"provider" json:"provider"` // "credentials", "google", etc.
	ProviderId       string                 `bson:"providerId,omitempty" json:"providerId,omitempty"`
	Image            string                 `bson:"image,omitempty" json:"image,omitempty"`
	EmailVerified    bool                   `bson:"emailVerified" json:"emailVerified"`
	StripeCustomerID string                 `bson:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	Subscribed       bool                   `bson:"subscribed" json:"subscribed"` // mailing list opt-in
	Address          *Address               `bson:"address,omitempty" json:"address,omitempty"`
	Preferences      map[string]interface{} `bson:"preferences" json:"preferences"`
	CreatedAt        time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// PasswordResetToken is consumed once by the reset-password endpoint.
type PasswordResetToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Token     string             `bson:"token"`
	ExpiresAt time.Time          `bson:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt"`
}
