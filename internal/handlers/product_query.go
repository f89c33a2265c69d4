package handlers

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/protyayrd/tweestbd-sub003/internal/catalog"
	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

// categoryScopeIDs expands a category to the level-3 ids products can
// reference: a level-3 category is itself, a level-2 collects its children,
// a level-1 collects its grandchildren.
func categoryScopeIDs(category *models.Category, categories []models.Category) []primitive.ObjectID {
	if category.Level >= 3 {
		return []primitive.ObjectID{category.ID}
	}

	ids := make([]primitive.ObjectID, 0)
	for _, child := range catalog.ChildrenOf(category, categories) {
		if child.Level >= 3 {
			ids = append(ids, child.ID)
			continue
		}
		for _, grandchild := range catalog.ChildrenOf(&child, categories) {
			ids = append(ids, grandchild.ID)
		}
	}
	if len(ids) == 0 {
		// childless mid-level category: match itself so the listing is empty
		// rather than unconstrained
		ids = append(ids, category.ID)
	}
	return ids
}

// listingFilter translates listing query parameters into a Mongo filter.
// Dimensions combine with implicit AND semantics; malformed or unresolvable
// values drop their constraint instead of failing the request.
func listingFilter(q url.Values, categories []models.Category) bson.M {
	filter := bson.M{}

	if token := strings.TrimSpace(q.Get("category")); token != "" {
		if category := catalog.Resolve(token, categories); category != nil {
			filter["category"] = bson.M{"$in": categoryScopeIDs(category, categories)}
		}
	}

	price := bson.M{}
	if raw := strings.TrimSpace(q.Get("minPrice")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			price["$gte"] = v
		}
	}
	if raw := strings.TrimSpace(q.Get("maxPrice")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			price["$lte"] = v
		}
	}
	if len(price) > 0 {
		// price filters key on the discounted price, not the list price
		filter["discountedPrice"] = price
	}

	if colors := splitCommaParam(q.Get("colors")); len(colors) > 0 {
		filter["colors.name"] = bson.M{"$in": colors}
	}
	if sizes := splitCommaParam(q.Get("sizes")); len(sizes) > 0 {
		filter["colors.sizes.name"] = bson.M{"$in": sizes}
	}

	if search := strings.TrimSpace(q.Get("search")); search != "" {
		filter["title"] = bson.M{"$regex": search, "$options": "i"}
	}

	if raw := strings.TrimSpace(q.Get("minDiscount")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			filter["discountPersent"] = bson.M{"$gte": v}
		}
	}
	if raw := strings.TrimSpace(q.Get("rating")); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			filter["avgRating"] = bson.M{"$gte": v}
		}
	}

	switch strings.TrimSpace(q.Get("stock")) {
	case catalog.StockIn:
		filter["quantity"] = bson.M{"$gt": 0}
	case catalog.StockOut:
		filter["quantity"] = bson.M{"$lte": 0}
	}

	if q.Get("isNewArrival") == "true" {
		filter["isNewArrival"] = true
	}
	if q.Get("isFeatured") == "true" {
		filter["isFeatured"] = true
	}

	return filter
}

// listingSort maps the client sort token to a Mongo sort document. Ties on
// the primary key break on _id so pagination stays deterministic.
func listingSort(token string) bson.D {
	spec, ok := catalog.ParseSort(token)
	if !ok {
		return bson.D{{Key: "_id", Value: 1}}
	}
	order := 1
	if spec.SortOrder == "desc" {
		order = -1
	}
	return bson.D{{Key: spec.SortBy, Value: order}, {Key: "_id", Value: 1}}
}

// availableFiltersPipeline aggregates the colors and sizes present in the
// category-scoped result set before the other filter dimensions apply.
func availableFiltersPipeline(categoryFilter bson.M) mongo.Pipeline {
	match := bson.M{}
	if scope, ok := categoryFilter["category"]; ok {
		match["category"] = scope
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$colors"}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$colors.sizes",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    nil,
			"colors": bson.M{"$addToSet": "$colors.name"},
			"sizes":  bson.M{"$addToSet": "$colors.sizes.name"},
		}}},
	}
}

func sortedFilterValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func splitCommaParam(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
