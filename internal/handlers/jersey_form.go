package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

type JerseyFormSettingsRequest struct {
	NameEnabled      *bool    `json:"nameEnabled"`
	NumberEnabled    *bool    `json:"numberEnabled"`
	NamePrice        *float64 `json:"namePrice"`
	NumberPrice      *float64 `json:"numberPrice"`
	MaxNameLength    *int     `json:"maxNameLength"`
	InstructionsText *string  `json:"instructionsText"`
}

/*
GET /api/jersey-form-settings
- singleton document; defaults are returned before the first PUT
*/
func GetJerseyFormSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/jersey-form-settings"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		var settings models.JerseyFormSettings
		err := db.Collection("jerseyFormSettings").FindOne(ctx, bson.M{}).Decode(&settings)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusOK, models.JerseyFormSettings{MaxNameLength: defaultMaxJerseyName})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

/*
PUT /api/jersey-form-settings
- upserts the singleton
*/
func UpdateJerseyFormSettings(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/jersey-form-settings"
		defer handlePanic(c, route)

		var req JerseyFormSettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{"updatedAt": time.Now()}
		if req.NameEnabled != nil {
			update["nameEnabled"] = *req.NameEnabled
		}
		if req.NumberEnabled != nil {
			update["numberEnabled"] = *req.NumberEnabled
		}
		if req.NamePrice != nil {
			if *req.NamePrice < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "namePrice cannot be negative"})
				return
			}
			update["namePrice"] = *req.NamePrice
		}
		if req.NumberPrice != nil {
			if *req.NumberPrice < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "numberPrice cannot be negative"})
				return
			}
			update["numberPrice"] = *req.NumberPrice
		}
		if req.MaxNameLength != nil {
			if *req.MaxNameLength < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "maxNameLength must be at least 1"})
				return
			}
			update["maxNameLength"] = *req.MaxNameLength
		}
		if req.InstructionsText != nil {
			update["instructionsText"] = *req.InstructionsText
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var updated models.JerseyFormSettings
		err := db.Collection("jerseyFormSettings").
			FindOneAndUpdate(
				ctx,
				bson.M{},
				bson.M{"$set": update},
				options.FindOneAndUpdate().
					SetUpsert(true).
					SetReturnDocument(options.After),
			).
			Decode(&updated)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
