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

	"github.com/protyayrd/tweestbd-sub003/internal/catalog"
	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

type CategoryCreateRequest struct {
	Name               string  `json:"name" binding:"required"`
	Slug               string  `json:"slug"`
	Level              int     `json:"level" binding:"required"`
	ParentCategory     *string `json:"parentCategory"`
	ImageURL           string  `json:"imageUrl"`
	Description        string  `json:"description"`
	FeaturedInCarousel *bool   `json:"featuredInCarousel"`
}

type CategoryUpdateRequest struct {
	Name               *string `json:"name"`
	Slug               *string `json:"slug"`
	Level              *int    `json:"level"`
	ParentCategory     *string `json:"parentCategory"`
	ImageURL           *string `json:"imageUrl"`
	Description        *string `json:"description"`
	FeaturedInCarousel *bool   `json:"featuredInCarousel"`
}

func resolveParent(c *gin.Context, db *mongo.Database, raw *string) (*models.Category, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}

	parentID, err := primitive.ObjectIDFromHex(strings.TrimSpace(*raw))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parentCategory"})
		return nil, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var parent models.Category
	err = db.Collection("categories").FindOne(ctx, bson.M{"_id": parentID}).Decode(&parent)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parent category not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return nil, false
	}
	return &parent, true
}

func slugTaken(c *gin.Context, db *mongo.Database, slug string, exclude *primitive.ObjectID) (bool, bool) {
	filter := bson.M{"slug": slug}
	if exclude != nil {
		filter["_id"] = bson.M{"$ne": *exclude}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	count, err := db.Collection("categories").CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return false, false
	}
	return count > 0, true
}

/*
POST /api/categories
- level/parent invariant enforced here, not in the client
*/
func CreateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		parent, ok := resolveParent(c, db, req.ParentCategory)
		if !ok {
			return
		}
		if err := catalog.ValidateHierarchy(req.Level, parent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		slug := strings.TrimSpace(req.Slug)
		if slug != "" {
			taken, ok := slugTaken(c, db, slug, nil)
			if !ok {
				return
			}
			if taken {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already exists"})
				return
			}
		}

		featured := false
		if req.FeaturedInCarousel != nil {
			featured = *req.FeaturedInCarousel
		}

		category := models.Category{
			Slug:               slug,
			Name:               name,
			Level:              req.Level,
			ImageURL:           strings.TrimSpace(req.ImageURL),
			Description:        strings.TrimSpace(req.Description),
			FeaturedInCarousel: featured,
			CreatedAt:          time.Now(),
		}
		if parent != nil {
			category.ParentCategory = &parent.ID
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		category.ID = result.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, category)
	}
}

/*
PUT /api/categories/:id
*/
func UpdateCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		var req CategoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var existing models.Category
		err := db.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		update := bson.M{}
		unset := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
				return
			}
			update["name"] = name
		}

		// the level/parent pair is validated against the merged state so a
		// partial update cannot break the hierarchy invariant
		level := existing.Level
		if req.Level != nil {
			level = *req.Level
		}

		var parent *models.Category
		if req.ParentCategory != nil {
			resolved, ok := resolveParent(c, db, req.ParentCategory)
			if !ok {
				return
			}
			parent = resolved
		} else if existing.ParentCategory != nil {
			raw := existing.ParentCategory.Hex()
			resolved, ok := resolveParent(c, db, &raw)
			if !ok {
				return
			}
			parent = resolved
		}

		if err := catalog.ValidateHierarchy(level, parent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if req.Level != nil {
			update["level"] = level
		}
		if req.ParentCategory != nil {
			if parent == nil {
				unset["parentCategory"] = ""
			} else {
				update["parentCategory"] = parent.ID
			}
		}

		if req.Slug != nil {
			slug := strings.TrimSpace(*req.Slug)
			if slug == "" {
				unset["slug"] = ""
			} else {
				taken, ok := slugTaken(c, db, slug, &id)
				if !ok {
					return
				}
				if taken {
					c.JSON(http.StatusConflict, gin.H{"error": "slug already exists"})
					return
				}
				update["slug"] = slug
			}
		}

		if req.ImageURL != nil {
			update["imageUrl"] = strings.TrimSpace(*req.ImageURL)
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.FeaturedInCarousel != nil {
			update["featuredInCarousel"] = *req.FeaturedInCarousel
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

		var updated models.Category
		err = db.Collection("categories").
			FindOneAndUpdate(
				ctx,
				bson.M{"_id": id},
				change,
				options.FindOneAndUpdate().SetReturnDocument(options.After),
			).
			Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

/*
DELETE /api/categories/:id
- removes only the named document; children are NOT cascade-deleted and keep
  their (now dangling) parentCategory reference
*/
func DeleteCategory(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		result, err := db.Collection("categories").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if result.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
