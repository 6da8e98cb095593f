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

type submitReviewRequest struct {
	ServiceSlug string `json:"serviceSlug" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Text        string `json:"text" validate:"required"`
}

// SubmitReview stores a review pending moderation.
func SubmitReview(c echo.Context) error {
	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	review := models.Review{
		ID:          primitive.NewObjectID(),
		ServiceSlug: req.ServiceSlug,
		Author:      req.Author,
		Rating:      req.Rating,
		Text:        req.Text,
		CreatedAt:   time.Now(),
	}

	if _, err := database.DB.Collection("reviews").InsertOne(ctx, review); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save review"})
	}

	return c.JSON(http.StatusCreated, review)
}

// GetServiceReviews lists approved reviews for one service.
func GetServiceReviews(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("reviews").Find(
		ctx,
		bson.M{"serviceSlug": c.Param("slug"), "approved": true},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch reviews"})
	}

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode reviews"})
	}

	return c.JSON(http.StatusOK, reviews)
}
