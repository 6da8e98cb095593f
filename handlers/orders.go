package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetUserOrders lists the signed-in user's orders, newest first. Orders are
// keyed by email because they are created from webhook events, which carry
// no application user id.
func GetUserOrders(c echo.Context) error {
	email, ok := c.Get("userEmail").(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("orders").Find(
		ctx,
		bson.M{"userEmail": email},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch orders"})
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode orders"})
	}

	return c.JSON(http.StatusOK, orders)
}
