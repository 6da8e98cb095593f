package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationOrder        NotificationType = "order"
	NotificationSubscription NotificationType = "subscription"
	NotificationWarning      NotificationType = "warning"
)

// Notification is a per-user feed entry created as a side effect of order
// and subscription-lifecycle webhook events.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	Type      NotificationType   `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
