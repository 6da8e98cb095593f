package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemOption is a selected add-on on a cart line item.
type ItemOption struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type CartItem struct {
	ServiceSlug string       `bson:"serviceSlug" json:"serviceSlug"`
	Title       string       `bson:"title" json:"title"`
	BasePrice   float64      `bson:"basePrice" json:"basePrice"`
	Price       float64      `bson:"price" json:"price"` // basePrice + selected options
	Options     []ItemOption `bson:"options" json:"options"`
	Quantity    int          `bson:"quantity" json:"quantity"`
	// Subscription items keep the cart alive after checkout.
	Subscription bool `bson:"subscription" json:"subscription"`
}

// Contact, Address and Schedule are accumulated across the booking wizard
// steps and carried into checkout metadata.
type Contact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`
}

type Schedule struct {
	Date     string `bson:"date" json:"date"`
	TimeSlot string `bson:"timeSlot" json:"timeSlot"`
}

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	Items     []CartItem         `bson:"items" json:"items"`
	Contact   *Contact           `bson:"contact,omitempty" json:"contact,omitempty"`
	Address   *Address           `bson:"address,omitempty" json:"address,omitempty"`
	Schedule  *Schedule          `bson:"schedule,omitempty" json:"schedule,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
