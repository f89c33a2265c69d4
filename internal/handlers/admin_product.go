package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/catalog"
	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

type ProductCreateRequest struct {
	Title           string                `json:"title" binding:"required"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	Price           float64               `json:"price" binding:"required"`
	DiscountedPrice *float64              `json:"discountedPrice"`
	DiscountPercent *int                  `json:"discountPersent"`
	Category        string                `json:"category" binding:"required"`
	Colors          []models.ProductColor `json:"colors" binding:"required"`
	SizeGuide       *string               `json:"sizeGuide"`
	IsNewArrival    bool                  `json:"isNewArrival"`
	IsFeatured      bool                  `json:"isFeatured"`
}

type ProductUpdateRequest struct {
	Title           *string                `json:"title"`
	Slug            *string                `json:"slug"`
	Description     *string                `json:"description"`
	Price           *float64               `json:"price"`
	DiscountedPrice *float64               `json:"discountedPrice"`
	DiscountPercent *int                   `json:"discountPersent"`
	Category        *string                `json:"category"`
	Colors          *[]models.ProductColor `json:"colors"`
	SizeGuide       *string                `json:"sizeGuide"`
	IsNewArrival    *bool                  `json:"isNewArrival"`
	IsFeatured      *bool                  `json:"isFeatured"`
}

// resolveLeafCategory validates that the referenced category exists and sits
// at level 3, the only level products may attach to.
func resolveLeafCategory(c *gin.Context, db *mongo.Database, raw string) (*models.Category, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return nil, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var category models.Category
	err = db.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return nil, false
	}
	if category.Level != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "products require a level-3 category"})
		return nil, false
	}
	return &category, true
}

func parseSizeGuideRef(c *gin.Context, raw *string) (*primitive.ObjectID, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(*raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sizeGuide"})
		return nil, false
	}
	return &id, true
}

/*
GET /api/admin/products
- back-office list with search/category/isNewArrival filters
*/
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/admin/products"
		defer handlePanic(c, route)

		page, size, err := parsePageParams(c.Query("pageNumber"), c.Query("pageSize"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"title": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}
		if raw := strings.TrimSpace(c.Query("category")); raw != "" {
			if id, err := primitive.ObjectIDFromHex(raw); err == nil {
				filter["category"] = id
			}
		}
		if c.Query("isNewArrival") == "true" {
			filter["isNewArrival"] = true
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSkip((page - 1) * size).
			SetLimit(size).
			SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":       page,
				"pageSize":   size,
				"total":      total,
				"totalPages": totalPages(total, size),
			},
		})
	}
}

/*
POST /api/admin/products
*/
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /api/admin/products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
			return
		}

		if err := catalog.ValidateColors(req.Colors); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		category, ok := resolveLeafCategory(c, db, req.Category)
		if !ok {
			return
		}

		pricing, err := resolvePricingUpdate(models.Product{}, pricingInput{
			Price:           &req.Price,
			DiscountedPrice: req.DiscountedPrice,
			DiscountPercent: req.DiscountPercent,
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sizeGuide, ok := parseSizeGuideRef(c, req.SizeGuide)
		if !ok {
			return
		}

		product := models.Product{
			Title:           title,
			Slug:            strings.TrimSpace(req.Slug),
			Description:     strings.TrimSpace(req.Description),
			Price:           pricing.Price,
			DiscountedPrice: pricing.DiscountedPrice,
			DiscountPercent: pricing.DiscountPercent,
			Category:        category.ID,
			Colors:          req.Colors,
			SizeGuide:       sizeGuide,
			IsNewArrival:    req.IsNewArrival,
			IsFeatured:      req.IsFeatured,
			Quantity:        catalog.TotalQuantity(req.Colors),
			CreatedAt:       time.Now(),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			log.Printf("[%s] insert error: %v", route, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] created product %s", route, product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

/*
PUT /api/admin/products/:id
*/
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /api/admin/products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var existing models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		update := bson.M{}
		unset := bson.M{}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "title required"})
				return
			}
			update["title"] = title
		}
		if req.Slug != nil {
			slug := strings.TrimSpace(*req.Slug)
			if slug == "" {
				unset["slug"] = ""
			} else {
				update["slug"] = slug
			}
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}

		if req.Price != nil || req.DiscountedPrice != nil || req.DiscountPercent != nil {
			pricing, err := resolvePricingUpdate(existing, pricingInput{
				Price:           req.Price,
				DiscountedPrice: req.DiscountedPrice,
				DiscountPercent: req.DiscountPercent,
			})
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["price"] = pricing.Price
			update["discountedPrice"] = pricing.DiscountedPrice
			update["discountPersent"] = pricing.DiscountPercent
		}

		if req.Category != nil {
			category, ok := resolveLeafCategory(c, db, *req.Category)
			if !ok {
				return
			}
			update["category"] = category.ID
		}

		if req.Colors != nil {
			if err := catalog.ValidateColors(*req.Colors); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			update["colors"] = *req.Colors
			update["quantity"] = catalog.TotalQuantity(*req.Colors)
		}

		if req.SizeGuide != nil {
			sizeGuide, ok := parseSizeGuideRef(c, req.SizeGuide)
			if !ok {
				return
			}
			if sizeGuide == nil {
				unset["sizeGuide"] = ""
			} else {
				update["sizeGuide"] = *sizeGuide
			}
		}

		if req.IsNewArrival != nil {
			update["isNewArrival"] = *req.IsNewArrival
		}
		if req.IsFeatured != nil {
			update["isFeatured"] = *req.IsFeatured
		}

		if len(update) == 0 && len(unset) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		change := bson.M{}
		if len(update) > 0 {
			change["$set"] = update
		}
		if len(unset) > 0 {
			change["$unset"] = unset
		}

		var updated models.Product
		err = db.Collection("products").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				change,
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
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
DELETE /api/admin/products/:id
*/
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /api/admin/products/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
