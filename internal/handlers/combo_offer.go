package handlers

import (
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

type ComboOfferCreateRequest struct {
	Name       string   `json:"name" binding:"required"`
	ProductIDs []string `json:"productIds" binding:"required"`
	ComboPrice float64  `json:"comboPrice" binding:"required"`
	ImageURL   string   `json:"imageUrl"`
	IsActive   *bool    `json:"isActive"`
}

type ComboOfferUpdateRequest struct {
	Name       *string   `json:"name"`
	ProductIDs *[]string `json:"productIds"`
	ComboPrice *float64  `json:"comboPrice"`
	ImageURL   *string   `json:"imageUrl"`
	IsActive   *bool     `json:"isActive"`
}

// resolveComboProducts validates member ids and checks the combo price
// undercuts the members' combined discounted price.
func resolveComboProducts(c *gin.Context, db *mongo.Database, rawIDs []string, comboPrice float64) ([]primitive.ObjectID, bool) {
	if len(rawIDs) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a combo requires at least 2 products"})
		return nil, false
	}

	ids := make([]primitive.ObjectID, 0, len(rawIDs))
	seen := map[primitive.ObjectID]struct{}{}
	for _, raw := range rawIDs {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id: " + raw})
			return nil, false
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	cursor, err := db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return nil, false
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
		return nil, false
	}
	if len(products) != len(ids) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "one or more products not found"})
		return nil, false
	}

	sum := 0.0
	for _, product := range products {
		sum += product.DiscountedPrice
	}
	if comboPrice <= 0 || comboPrice >= sum {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comboPrice must be below the products' combined price"})
		return nil, false
	}

	return ids, true
}

/*
GET /api/combo-offers
*/
func GetComboOffers(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/combo-offers"
		defer handlePanic(c, route)

		filter := bson.M{}
		if c.Query("activeOnly") == "true" {
			filter["isActive"] = true
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		cursor, err := db.Collection("comboOffers").Find(
			ctx,
			filter,
			options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		offers := make([]models.ComboOffer, 0)
		if err := cursor.All(ctx, &offers); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, offers)
	}
}

/*
POST /api/combo-offers
*/
func CreateComboOffer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/combo-offers"
		defer handlePanic(c, route)

		var req ComboOfferCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		ids, ok := resolveComboProducts(c, db, req.ProductIDs, req.ComboPrice)
		if !ok {
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		offer := models.ComboOffer{
			Name:       name,
			ProductIDs: ids,
			ComboPrice: req.ComboPrice,
			ImageURL:   strings.TrimSpace(req.ImageURL),
			IsActive:   isActive,
			CreatedAt:  time.Now(),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection("comboOffers").InsertOne(ctx, offer)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		offer.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, offer)
	}
}

/*
PUT /api/combo-offers/:id
*/
func UpdateComboOffer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/combo-offers/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var req ComboOfferUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var existing models.ComboOffer
		err := db.Collection("comboOffers").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "combo offer not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		update := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}

		// price and membership validate together against the merged state
		if req.ProductIDs != nil || req.ComboPrice != nil {
			comboPrice := existing.ComboPrice
			if req.ComboPrice != nil {
				comboPrice = *req.ComboPrice
			}
			rawIDs := make([]string, 0, len(existing.ProductIDs))
			for _, pid := range existing.ProductIDs {
				rawIDs = append(rawIDs, pid.Hex())
			}
			if req.ProductIDs != nil {
				rawIDs = *req.ProductIDs
			}

			ids, ok := resolveComboProducts(c, db, rawIDs, comboPrice)
			if !ok {
				return
			}
			update["productIds"] = ids
			update["comboPrice"] = comboPrice
		}

		if req.ImageURL != nil {
			update["imageUrl"] = strings.TrimSpace(*req.ImageURL)
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		var updated models.ComboOffer
		err = db.Collection("comboOffers").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				bson.M{"$set": update},
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "combo offer not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/combo-offers/:id
*/
func DeleteComboOffer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/combo-offers/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection("comboOffers").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "combo offer not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
