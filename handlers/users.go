package handlers

import (
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUserProfile retrieves the user's profile
func GetUserProfile(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var user models.User
	err := database.DB.Collection("users").FindOne(
		c.Request().Context(),
		bson.M{"_id": userID},
	).Decode(&user)

	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUserProfile updates the user's profile information
func UpdateUserProfile(c echo.Context) error {
	userID := c.Get("userID").(primitive.ObjectID)

	var updateData struct {
		Name        string                 `json:"name"`
		PhoneNumber string                 `json:"phoneNumber"`
		Address     *models.Address        `json:"address"`
		Subscribed  *bool                  `json:"subscribed"`
		Preferences map[string]interface{} `json:"preferences"`
	}

	if err := c.Bind(&updateData); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	set := bson.M{
		"name":        updateData.Name,
		"phoneNumber": updateData.PhoneNumber,
		"preferences": updateData.Preferences,
		"updatedAt":   time.Now(),
	}
	if updateData.Address != nil {
		set["address"] = updateData.Address
	}
	if updateData.Subscribed != nil {
		set["subscribed"] = *updateData.Subscribed
	}

	_, err := database.DB.Collection("users").UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		bson.M{"$set": set},
	)

	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update profile"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}
