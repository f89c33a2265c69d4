package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

/*
GET /api/products
- all filter dimensions combine with AND semantics
- response carries content + totals + availableFilters
- currentPage in the response is 0-based
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit category=%s search=%s sort=%s pageNumber=%s",
			route,
			c.Query("category"),
			c.Query("search"),
			c.Query("sort"),
			c.Query("pageNumber"),
		)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		page, size, err := parsePageParams(c.Query("pageNumber"), c.Query("pageSize"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := loadCategories(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		filter := listingFilter(c.Request.URL.Query(), categories)
		sortDoc := listingSort(c.Query("sort"))

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSort(sortDoc).
			SetSkip((page - 1) * size).
			SetLimit(size)

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

		available, err := loadAvailableFilters(ctx, db, filter)
		if err != nil {
			// the listing itself is still useful without filter options
			log.Printf("[%s] availableFilters aggregation failed: %v", route, err)
			available = emptyAvailableFilters()
		}

		log.Printf("[%s] returning %d of %d products", route, len(products), total)
		c.JSON(http.StatusOK, listingEnvelope(products, total, page, size, available))
	}
}

// listingEnvelope assembles the listing page contract. The request's
// pageNumber is 1-based; currentPage in the response is 0-based and existing
// clients rely on that asymmetry.
func listingEnvelope(products []models.Product, total, page, size int64, available models.AvailableFilters) models.ProductListResponse {
	return models.ProductListResponse{
		Content:          products,
		TotalPages:       totalPages(total, size),
		CurrentPage:      page - 1,
		TotalProducts:    total,
		AvailableFilters: available,
	}
}

// emptyAvailableFilters keeps the option lists as empty arrays, never null,
// when the aggregation is unavailable.
func emptyAvailableFilters() models.AvailableFilters {
	return models.AvailableFilters{Colors: []string{}, Sizes: []string{}}
}

func loadAvailableFilters(ctx context.Context, db *mongo.Database, filter bson.M) (models.AvailableFilters, error) {
	cursor, err := db.Collection("products").Aggregate(ctx, availableFiltersPipeline(filter))
	if err != nil {
		return models.AvailableFilters{}, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Colors []string `bson:"colors"`
		Sizes  []string `bson:"sizes"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return models.AvailableFilters{}, err
	}

	available := models.AvailableFilters{Colors: []string{}, Sizes: []string{}}
	if len(results) > 0 {
		available.Colors = sortedFilterValues(results[0].Colors)
		available.Sizes = sortedFilterValues(results[0].Sizes)
	}
	return available, nil
}

/*
GET /api/products/id/:id
*/
func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/id/:id"
		defer handlePanic(c, route)

		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

/*
GET /api/products/slug/:slug
*/
func GetProductBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/products/slug/:slug"
		defer handlePanic(c, route)

		slug := strings.TrimSpace(c.Param("slug"))
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"slug": slug}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
