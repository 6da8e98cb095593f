package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/models"
	"github.com/calltechcare/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type NextAuthSignInRequest struct {
	Provider   string `json:"provider"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	Name       string `json:"name,omitempty"`
	Image      string `json:"image,omitempty"`
	ProviderId string `json:"providerId,omitempty"`
}

// NextAuthSignIn handles sign-in requests from NextAuth. Credential
// requests are checked against the hashed password; OAuth callbacks create
// the user on first sight.
func NextAuthSignIn(c echo.Context) error {
	var req NextAuthSignInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Email is required"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.DB.Collection("users").FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)

	if req.Provider == "credentials" || req.Provider == "" {
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
	} else if err != nil {
		// Create new user if not exists
		user = models.User{
			ID:            primitive.NewObjectID(),
			Email:         req.Email,
			Name:          req.Name,
			Image:         req.Image,
			Provider:      req.Provider,
			ProviderId:    req.ProviderId,
			EmailVerified: true,
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}

		_, err = database.DB.Collection("users").InsertOne(ctx, user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create user"})
		}
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to generate token"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":            user.ID.Hex(),
			"email":         user.Email,
			"name":          user.Name,
			"image":         user.Image,
			"emailVerified": user.EmailVerified,
		},
		"token": token,
	})
}

// NextAuthSession verifies and returns the current session
func NextAuthSession(c echo.Context) error {
	userID, ok := c.Get("userID").(primitive.ObjectID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid session"})
	}

	var user models.User
	err := database.DB.Collection("users").FindOne(c.Request().Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"id":            user.ID.Hex(),
			"email":         user.Email,
			"name":          user.Name,
			"image":         user.Image,
			"emailVerified": user.EmailVerified,
			"phoneNumber":   user.PhoneNumber,
			"preferences":   user.Preferences,
		},
	})
}

// NextAuthCSRF generates and returns a CSRF token
func NextAuthCSRF(c echo.Context) error {
	token := utils.GenerateCSRFToken()
	return c.JSON(http.StatusOK, map[string]string{
		"csrfToken": token,
	})
}
