package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/assessment"
	"github.com/calltechcare/backend-go/cms"
	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/logger"
	"github.com/calltechcare/backend-go/models"
	"github.com/calltechcare/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type submitAssessmentRequest struct {
	Email   string            `json:"email" validate:"omitempty,email"`
	Answers map[string]string `json:"answers" validate:"required"`
}

// SubmitAssessment scores a quiz submission against the CMS schema, matches
// a recommendation tier and persists it under a fresh share identifier.
func SubmitAssessment(c echo.Context) error {
	var req submitAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if len(req.Answers) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No answers provided"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	schema, err := cmsClient.GetAssessmentSchema(ctx)
	if err != nil {
		logger.Log.Error("Failed to fetch assessment schema", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load assessment"})
	}

	result := assessment.Score(schema, req.Answers)

	tierSlug := ""
	var tier *cms.RecommendationTier
	tiers, err := cmsClient.GetRecommendationTiers(ctx)
	if err != nil {
		logger.Log.Warn("Failed to fetch recommendation tiers", zap.Error(err))
	} else if tier = cms.MatchTier(tiers, result.OverallScore); tier != nil {
		tierSlug = tier.Slug
	}

	doc := models.Assessment{
		ID:             primitive.NewObjectID(),
		ShareID:        utils.GenerateShareID(),
		Email:          req.Email,
		Answers:        req.Answers,
		CategoryScores: result.CategoryScores,
		OverallScore:   result.OverallScore,
		TierSlug:       tierSlug,
		CreatedAt:      time.Now(),
	}

	if _, err := database.DB.Collection("assessments").InsertOne(ctx, doc); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save assessment"})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"shareId":        doc.ShareID,
		"overallScore":   doc.OverallScore,
		"categoryScores": doc.CategoryScores,
		"tier":           tier,
	})
}

// GetAssessment returns a shared result and increments its view counter by
// exactly one.
func GetAssessment(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := database.DB.Collection("assessments").FindOneAndUpdate(
		ctx,
		bson.M{"shareId": c.Param("shareId")},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc models.Assessment
	if err := result.Decode(&doc); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Assessment not found"})
	}

	return c.JSON(http.StatusOK, doc)
}

// GetAssessmentStats aggregates submission counts and scores per tier.
// Guarded by the shared sync secret.
func GetAssessmentStats(c echo.Context) error {
	if !checkSyncSecret(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("assessments").Aggregate(ctx, bson.A{
		bson.M{"$group": bson.M{
			"_id":      "$tierSlug",
			"count":    bson.M{"$sum": 1},
			"avgScore": bson.M{"$avg": "$overallScore"},
			"views":    bson.M{"$sum": "$views"},
		}},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to aggregate assessments"})
	}

	var groups []struct {
		Tier     string  `bson:"_id" json:"tier"`
		Count    int64   `bson:"count" json:"count"`
		AvgScore float64 `bson:"avgScore" json:"avgScore"`
		Views    int64   `bson:"views" json:"views"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode aggregation"})
	}

	var total, views int64
	var weighted float64
	for _, g := range groups {
		total += g.Count
		views += g.Views
		weighted += g.AvgScore * float64(g.Count)
	}
	mean := 0.0
	if total > 0 {
		mean = weighted / float64(total)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total":     total,
		"meanScore": mean,
		"views":     views,
		"byTier":    groups,
	})
}
