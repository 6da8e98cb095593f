package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/database"
	"github.com/calltechcare/backend-go/logger"
	"github.com/calltechcare/backend-go/mailinglist"
	"github.com/calltechcare/backend-go/models"
	"github.com/calltechcare/backend-go/utils"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// checkSyncSecret guards the operational endpoints with a single shared
// Basic-Auth secret, compared in constant time.
func checkSyncSecret(c echo.Context) bool {
	if config.C.SyncSecret == "" {
		return false
	}
	_, password, ok := c.Request().BasicAuth()
	return ok && utils.SecureCompare(password, config.C.SyncSecret)
}

// SyncPricing refreshes the Mongo service snapshot from the CMS. Entries
// the CMS no longer returns are deactivated, not deleted.
func SyncPricing(c echo.Context) error {
	if !checkSyncSecret(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	docs, err := cmsClient.GetServices(ctx)
	if err != nil {
		logger.Log.Error("Pricing sync failed to query CMS", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to query CMS"})
	}

	now := time.Now()
	slugs := make([]string, 0, len(docs))
	for _, doc := range docs {
		service := serviceFromCMS(doc)
		service.SyncedAt = now
		slugs = append(slugs, service.Slug)

		_, err := database.DB.Collection("services").UpdateOne(
			ctx,
			bson.M{"slug": service.Slug},
			bson.M{"$set": bson.M{
				"title":        service.Title,
				"description":  service.Description,
				"category":     service.Category,
				"basePrice":    service.BasePrice,
				"options":      service.Options,
				"subscription": service.Subscription,
				"active":       service.Active,
				"syncedAt":     now,
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upsert service"})
		}
	}

	if _, err := database.DB.Collection("services").UpdateMany(
		ctx,
		bson.M{"slug": bson.M{"$nin": slugs}},
		bson.M{"$set": bson.M{"active": false}},
	); err != nil {
		logger.Log.Warn("Failed to deactivate stale services", zap.Error(err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"synced": len(slugs)})
}

// SyncMailingList pushes subscribed users to the mailing-list provider.
func SyncMailingList(c echo.Context) error {
	if !checkSyncSecret(c) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cursor, err := database.DB.Collection("users").Find(ctx, bson.M{"subscribed": true})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch users"})
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to decode users"})
	}

	members := make([]mailinglist.Member, 0, len(users))
	for _, u := range users {
		members = append(members, mailinglist.Member{
			Email:  u.Email,
			Status: "subscribed",
			Name:   u.Name,
		})
	}

	synced, err := listClient.SyncMembers(ctx, members)
	if err != nil {
		logger.Log.Error("Mailing-list sync failed", zap.Int("synced", synced), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"error":  "Sync incomplete",
			"synced": synced,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"synced": synced})
}
