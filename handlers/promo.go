package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type claimPromoRequest struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	Code  string `json:"code" validate:"required"`
}

// ClaimPromo captures an email/phone lead for a promotional code.
func ClaimPromo(c echo.Context) error {
	var req claimPromoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lead := models.DiscountLead{
		ID:        primitive.NewObjectID(),
		Email:     strings.ToLower(req.Email),
		Phone:     req.Phone,
		Code:      strings.ToUpper(req.Code),
		CreatedAt: time.Now(),
	}

	if _, err := database.DB.Collection("discount_leads").InsertOne(ctx, lead); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.JSON(http.StatusOK, map[string]string{"message": "Code already claimed", "code": lead.Code})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save lead"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Code claimed", "code": lead.Code})
}

type validatePromoRequest struct {
	Code  string `json:"code" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// ValidatePromo reports whether a shared discount code is backed by a
// captured lead (and, when an email is supplied, by that lead).
func ValidatePromo(c echo.Context) error {
	var req validatePromoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"code": strings.ToUpper(req.Code)}
	if req.Email != "" {
		filter["email"] = strings.ToLower(req.Email)
	}

	count, err := database.DB.Collection("discount_leads").CountDocuments(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to validate code"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"valid": count > 0})
}
