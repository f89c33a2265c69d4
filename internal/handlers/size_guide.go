package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

type SizeGuideUpsertRequest struct {
	Name string                `json:"name" binding:"required"`
	Rows []models.SizeGuideRow `json:"rows" binding:"required"`
}

/*
GET /api/size-guides
*/
func GetSizeGuides(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/size-guides"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		cursor, err := db.Collection("sizeGuides").Find(
			ctx,
			bson.M{},
			options.Find().SetSort(bson.D{{Key: "name", Value: 1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		guides := make([]models.SizeGuide, 0)
		if err := cursor.All(ctx, &guides); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, guides)
	}
}

/*
GET /api/size-guides/:id
*/
func GetSizeGuideByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/size-guides/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var guide models.SizeGuide
		err := db.Collection("sizeGuides").FindOne(ctx, bson.M{"_id": id}).Decode(&guide)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "size guide not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, guide)
	}
}

/*
PUT /api/size-guides/:id
- full replace of name and rows
*/
func UpdateSizeGuide(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/size-guides/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var req SizeGuideUpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" || len(req.Rows) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and rows are required"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var updated models.SizeGuide
		err := db.Collection("sizeGuides").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{
					"$set":         bson.M{"name": name, "rows": req.Rows},
					"$setOnInsert": bson.M{"createdAt": time.Now()},
				},
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

/*
DELETE /api/size-guides/:id
- products referencing the guide keep their reference; the detail page simply
  stops rendering a guide
*/
func DeleteSizeGuide(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/size-guides/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection("sizeGuides").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "size guide not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
