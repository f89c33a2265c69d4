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

	"github.com/protyayrd/tweestbd-sub003/internal/catalog"
	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

func loadCategories(ctx context.Context, db *mongo.Database) ([]models.Category, error) {
	cursor, err := db.Collection("categories").Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "level", Value: 1}, {Key: "name", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

/*
GET /api/categories
- full flat list; the client builds its own tree
- ?featured=true narrows to carousel categories
*/
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories"
		defer handlePanic(c, route)

		log.Printf("[%s] hit", route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := loadCategories(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if c.Query("featured") == "true" {
			featured := make([]models.Category, 0)
			for _, category := range categories {
				if category.FeaturedInCarousel {
					featured = append(featured, category)
				}
			}
			categories = featured
		}

		log.Printf("[%s] returning %d categories", route, len(categories))
		c.JSON(http.StatusOK, categories)
	}
}

/*
GET /api/categories/resolve/:token
- slug-or-id resolution with children and breadcrumb chain
- a missing category is a 404 empty state, never a 500
*/
func ResolveCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /api/categories/resolve/:token"
		defer handlePanic(c, route)

		token := strings.TrimSpace(c.Param("token"))

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := loadCategories(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		category := catalog.Resolve(token, categories)
		if category == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		// id-resolved categories with a slug report their canonical URL so
		// the client can rewrite it, keeping the page number and filters
		canonical := ""
		if category.Slug != "" && token != category.Slug {
			canonical = catalog.CanonicalPath(category, c.Request.URL.RawQuery)
		}

		c.JSON(http.StatusOK, gin.H{
			"category":    category,
			"children":    catalog.ChildrenOf(category, categories),
			"breadcrumbs": catalog.ParentChain(category, categories),
			"canonical":   canonical,
		})
	}
}
