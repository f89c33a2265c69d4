package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

type ReviewCreateRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
	UserName  string `json:"userName" binding:"required"`
}

type ReviewUpdateRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

// recomputeProductRating rebuilds avgRating/numRatings from the reviews
// collection after any review mutation. Recomputing from scratch instead of
// adjusting incrementally keeps the server the single source of truth.
func recomputeProductRating(ctx context.Context, db *mongo.Database, productID primitive.ObjectID) error {
	cursor, err := db.Collection("reviews").Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"productId": productID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return err
	}

	avg, count := 0.0, 0
	if len(results) > 0 {
		avg, count = results[0].Avg, results[0].Count
	}

	_, err = db.Collection("products").UpdateOne(
		ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"avgRating": avg, "numRatings": count}},
	)
	return err
}

/*
GET /api/reviews?productId=<id>
*/
func GetReviews(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/reviews"
		defer handlePanic(c, route)

		filter := bson.M{}
		if raw := strings.TrimSpace(c.Query("productId")); raw != "" {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
				return
			}
			filter["productId"] = id
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cursor, err := db.Collection("reviews").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		reviews := make([]models.Review, 0)
		if err := cursor.All(ctx, &reviews); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}

/*
POST /api/reviews
*/
func CreateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/reviews"
		defer handlePanic(c, route)

		var req ReviewCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		if req.Rating < 1 || req.Rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
			return
		}

		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(req.ProductID))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		count, err := db.Collection("products").CountDocuments(ctx, bson.M{"_id": productID})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product not found"})
			return
		}

		review := models.Review{
			ProductID: productID,
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			UserName:  strings.TrimSpace(req.UserName),
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("reviews").InsertOne(ctx, review)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		review.ID = res.InsertedID.(primitive.ObjectID)

		if err := recomputeProductRating(ctx, db, productID); err != nil {
			log.Printf("[%s] rating recompute failed: %v", route, err)
		}

		c.JSON(http.StatusCreated, review)
	}
}

/*
PUT /api/reviews/:id
*/
func UpdateReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/reviews/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var req ReviewUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		update := bson.M{}
		if req.Rating != nil {
			if *req.Rating < 1 || *req.Rating > 5 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
				return
			}
			update["rating"] = *req.Rating
		}
		if req.Comment != nil {
			update["comment"] = strings.TrimSpace(*req.Comment)
		}
		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var updated models.Review
		err := db.Collection("reviews").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := recomputeProductRating(ctx, db, updated.ProductID); err != nil {
			log.Printf("[%s] rating recompute failed: %v", route, err)
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/reviews/:id
*/
func DeleteReview(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/reviews/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var review models.Review
		err := db.Collection("reviews").FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&review)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if err := recomputeProductRating(ctx, db, review.ProductID); err != nil {
			log.Printf("[%s] rating recompute failed: %v", route, err)
		}

		c.Status(http.StatusNoContent)
	}
}
