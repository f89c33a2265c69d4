package handlers

import (
	"net/url"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

func testCategories() []models.Category {
	men := models.Category{ID: primitive.NewObjectID(), Slug: "men", Name: "Men", Level: 1}
	shirts := models.Category{ID: primitive.NewObjectID(), Slug: "men-shirts", Name: "Shirts", Level: 2, ParentCategory: &men.ID}
	casual := models.Category{ID: primitive.NewObjectID(), Slug: "men-shirts-casual", Name: "Casual", Level: 3, ParentCategory: &shirts.ID}
	formal := models.Category{ID: primitive.NewObjectID(), Slug: "men-shirts-formal", Name: "Formal", Level: 3, ParentCategory: &shirts.ID}
	return []models.Category{men, shirts, casual, formal}
}

func TestCategoryScopeIDsLeafIsItself(t *testing.T) {
	categories := testCategories()
	casual := categories[2]

	ids := categoryScopeIDs(&casual, categories)
	if len(ids) != 1 || ids[0] != casual.ID {
		t.Fatalf("expected [%s], got %v", casual.ID.Hex(), ids)
	}
}

func TestCategoryScopeIDsMidLevelCollectsChildren(t *testing.T) {
	categories := testCategories()
	shirts := categories[1]

	ids := categoryScopeIDs(&shirts, categories)
	if len(ids) != 2 {
		t.Fatalf("expected 2 leaf ids, got %d", len(ids))
	}
	want := map[primitive.ObjectID]bool{categories[2].ID: true, categories[3].ID: true}
	for _, id := range ids {
		if !want[id] {
			t.Fatalf("unexpected id in scope: %s", id.Hex())
		}
	}
}

func TestCategoryScopeIDsTopLevelCollectsGrandchildren(t *testing.T) {
	categories := testCategories()
	men := categories[0]

	ids := categoryScopeIDs(&men, categories)
	if len(ids) != 2 {
		t.Fatalf("expected 2 grandchild ids, got %d", len(ids))
	}
}

func TestCategoryScopeIDsChildlessMidLevelMatchesItself(t *testing.T) {
	lonely := models.Category{ID: primitive.NewObjectID(), Slug: "lonely", Level: 2}
	ids := categoryScopeIDs(&lonely, []models.Category{lonely})
	if len(ids) != 1 || ids[0] != lonely.ID {
		t.Fatalf("expected self-match for childless category, got %v", ids)
	}
}

func TestListingFilterCombinesCategoryPriceAndSort(t *testing.T) {
	categories := testCategories()
	casual := categories[2]

	q := url.Values{}
	q.Set("category", "men-shirts-casual")
	q.Set("minPrice", "500")
	q.Set("maxPrice", "1500")

	filter := listingFilter(q, categories)

	scope, ok := filter["category"].(bson.M)
	if !ok {
		t.Fatalf("expected category scope, got %v", filter["category"])
	}
	ids := scope["$in"].([]primitive.ObjectID)
	if len(ids) != 1 || ids[0] != casual.ID {
		t.Fatalf("expected casual in scope, got %v", ids)
	}

	price, ok := filter["discountedPrice"].(bson.M)
	if !ok {
		t.Fatal("expected price range on discountedPrice")
	}
	if price["$gte"] != 500.0 || price["$lte"] != 1500.0 {
		t.Fatalf("unexpected price bounds: %v", price)
	}

	sortDoc := listingSort("priceLow")
	want := bson.D{{Key: "discountedPrice", Value: 1}, {Key: "_id", Value: 1}}
	if !reflect.DeepEqual(sortDoc, want) {
		t.Fatalf("expected %v, got %v", want, sortDoc)
	}
}

func TestListingFilterUnresolvableCategoryDropsConstraint(t *testing.T) {
	q := url.Values{}
	q.Set("category", "no-such-category")
	q.Set("search", "jersey")

	filter := listingFilter(q, testCategories())
	if _, ok := filter["category"]; ok {
		t.Fatal("unresolvable category should not constrain the filter")
	}
	if _, ok := filter["title"]; !ok {
		t.Fatal("search constraint should survive")
	}
}

func TestListingFilterVariantDimensions(t *testing.T) {
	q := url.Values{}
	q.Set("colors", "Red, Blue")
	q.Set("sizes", "M,L")
	q.Set("minDiscount", "20")
	q.Set("rating", "4")
	q.Set("stock", "in_stock")
	q.Set("isNewArrival", "true")

	filter := listingFilter(q, nil)

	colors := filter["colors.name"].(bson.M)["$in"].([]string)
	if !reflect.DeepEqual(colors, []string{"Red", "Blue"}) {
		t.Fatalf("unexpected colors: %v", colors)
	}
	sizes := filter["colors.sizes.name"].(bson.M)["$in"].([]string)
	if !reflect.DeepEqual(sizes, []string{"M", "L"}) {
		t.Fatalf("unexpected sizes: %v", sizes)
	}
	if filter["discountPersent"].(bson.M)["$gte"] != 20 {
		t.Fatalf("unexpected discount bound: %v", filter["discountPersent"])
	}
	if filter["avgRating"].(bson.M)["$gte"] != 4.0 {
		t.Fatalf("unexpected rating bound: %v", filter["avgRating"])
	}
	if filter["quantity"].(bson.M)["$gt"] != 0 {
		t.Fatalf("unexpected stock constraint: %v", filter["quantity"])
	}
	if filter["isNewArrival"] != true {
		t.Fatal("expected isNewArrival constraint")
	}
	if _, ok := filter["isFeatured"]; ok {
		t.Fatal("isFeatured should be absent when not requested")
	}
}

func TestListingFilterMalformedValuesDrop(t *testing.T) {
	q := url.Values{}
	q.Set("minPrice", "cheap")
	q.Set("minDiscount", "-5")
	q.Set("stock", "whatever")

	filter := listingFilter(q, nil)
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
}

func TestListingSortVocabulary(t *testing.T) {
	cases := []struct {
		token string
		want  bson.D
	}{
		{"newest", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}},
		{"oldest", bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
		{"priceLow", bson.D{{Key: "discountedPrice", Value: 1}, {Key: "_id", Value: 1}}},
		{"price_high", bson.D{{Key: "discountedPrice", Value: -1}, {Key: "_id", Value: 1}}},
		{"name", bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}},
		{"bogus", bson.D{{Key: "_id", Value: 1}}},
		{"", bson.D{{Key: "_id", Value: 1}}},
	}
	for _, tc := range cases {
		got := listingSort(tc.token)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("token %q: expected %v, got %v", tc.token, tc.want, got)
		}
	}
}

func TestAvailableFiltersPipelineScopesByCategoryOnly(t *testing.T) {
	scope := bson.M{"$in": []primitive.ObjectID{primitive.NewObjectID()}}
	filter := bson.M{
		"category":        scope,
		"discountedPrice": bson.M{"$gte": 500.0},
		"colors.name":     bson.M{"$in": []string{"Red"}},
	}

	pipeline := availableFiltersPipeline(filter)
	match := pipeline[0][0].Value.(bson.M)
	if len(match) != 1 {
		t.Fatalf("match stage should carry the category scope only, got %v", match)
	}
	if !reflect.DeepEqual(match["category"], scope) {
		t.Fatalf("unexpected category scope: %v", match["category"])
	}
}

func TestSortedFilterValuesDropsEmpties(t *testing.T) {
	got := sortedFilterValues([]string{"M", "", "L", "S"})
	want := []string{"L", "M", "S"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
