package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPaid OrderStatus = "PAID"
)

// CheckoutMode mirrors the payment processor's session mode.
type CheckoutMode string

const (
	ModePayment      CheckoutMode = "payment"
	ModeSubscription CheckoutMode = "subscription"
)

// Order is an immutable snapshot created exactly once per completed
// checkout-session webhook event. CheckoutSessionID carries a unique index
// so a redelivered event cannot create a second order.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CheckoutSessionID string             `bson:"checkoutSessionId" json:"checkoutSessionId"`
	Mode              CheckoutMode       `bson:"mode" json:"mode"`
	UserEmail         string             `bson:"userEmail" json:"userEmail"`
	Items             []CartItem         `bson:"items" json:"items"`
	Subtotal          float64            `bson:"subtotal" json:"subtotal"`
	Total             float64            `bson:"total" json:"total"`
	Contact           *Contact           `bson:"contact,omitempty" json:"contact,omitempty"`
	Address           *Address           `bson:"address,omitempty" json:"address,omitempty"`
	Schedule          *Schedule          `bson:"schedule,omitempty" json:"schedule,omitempty"`
	Status            OrderStatus        `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
