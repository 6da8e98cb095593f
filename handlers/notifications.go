package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetNotifications lists the signed-in user's notification feed.
func GetNotifications(c echo.Context) error {
	email, ok := c.Get("userEmail").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("notifications").Find(
		ctx,
		bson.M{"userEmail": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch notifications"})
	}

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode notifications"})
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead flags one of the user's notifications as read.
func MarkNotificationRead(c echo.Context) error {
	email, ok := c.Get("userEmail").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid notification ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.DB.Collection("notifications").UpdateOne(
		ctx,
		bson.M{"_id": id, "userEmail": email},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update notification"})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Notification not found"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Notification marked as read"})
}
